package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/loanlens-org/loanlens/internal/portfolio"
	"github.com/shopspring/decimal"
)

// ReportOptions controls report assembly.
type ReportOptions struct {
	// SampleRows determines how many preview rows to include.
	SampleRows int
	// Currency prefixes money values in text renderings.
	Currency string
}

// DefaultReportOptions returns the standard report settings.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{SampleRows: 5, Currency: "₹"}
}

// Report is the full analysis bundle for one session: metrics, cards, all
// views, and a sample preview.
type Report struct {
	SessionID    string     `json:"session_id" yaml:"session_id"`
	Source       string     `json:"source" yaml:"source"`
	LoadedAt     time.Time  `json:"loaded_at" yaml:"loaded_at"`
	GeneratedAt  time.Time  `json:"generated_at" yaml:"generated_at"`
	TotalRows    int        `json:"total_rows" yaml:"total_rows"`
	AnalyzedRows int        `json:"analyzed_rows" yaml:"analyzed_rows"`
	Metrics      *Metrics   `json:"metrics" yaml:"metrics"`
	Cards        []Card     `json:"cards" yaml:"cards"`
	RiskBand     string     `json:"risk_band" yaml:"risk_band"`
	RiskColor    string     `json:"risk_color" yaml:"risk_color"`
	RiskAlert    bool       `json:"risk_alert" yaml:"risk_alert"`
	Views        *Views     `json:"views" yaml:"views"`
	SampleHeader []string   `json:"sample_header,omitempty" yaml:"sample_header,omitempty"`
	Samples      [][]string `json:"samples,omitempty" yaml:"samples,omitempty"`
	Currency     string     `json:"currency" yaml:"currency"`
}

// BuildReport assembles metrics, views, and a sample preview over the
// session's row-limited data. Everything is recomputed on each call.
func BuildReport(s *portfolio.Session, opt ReportOptions) (*Report, error) {
	ds := s.Data()
	m, err := ComputeMetrics(ds)
	if err != nil {
		return nil, err
	}
	views, err := BuildViews(ds)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		SessionID:    s.ID,
		Source:       s.Source,
		LoadedAt:     s.LoadedAt,
		GeneratedAt:  time.Now(),
		TotalRows:    s.Full().Len(),
		AnalyzedRows: ds.Len(),
		Metrics:      m,
		Cards:        m.Cards(),
		RiskBand:     RiskBand(m.RiskScore),
		RiskColor:    BandColor(m.RiskScore),
		RiskAlert:    m.RiskAlert(),
		Views:        views,
		Currency:     opt.Currency,
	}
	n := opt.SampleRows
	if n <= 0 {
		n = 5
	}
	if n > ds.Len() {
		n = ds.Len()
	}
	if n > 0 {
		rep.SampleHeader = ds.Header()
		for _, r := range ds.Records()[:n] {
			rep.Samples = append(rep.Samples, r.Fields())
		}
	}
	return rep, nil
}

// Markdown renders the report with section headers, suitable for terminals
// and plain-text docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[PORTFOLIO]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	b.WriteString(fmt.Sprintf("Session: %s\n", r.SessionID))
	if r.AnalyzedRows < r.TotalRows {
		b.WriteString(fmt.Sprintf("Rows: %d (analyzing first %d)\n", r.TotalRows, r.AnalyzedRows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.TotalRows))
	}
	b.WriteString(fmt.Sprintf("Loaded: %s\n\n", r.LoadedAt.Format("2006-01-02 15:04:05")))

	writeMetricsSections(&b, r.Metrics, r.Currency)

	for _, name := range ViewNames() {
		b.WriteString("\n")
		writeViewSection(&b, name, r.Views.rows(name))
	}

	m := r.Metrics
	b.WriteString("\n[SUMMARY]\n")
	b.WriteString(fmt.Sprintf("- %d accounts analyzed", r.AnalyzedRows))
	if r.AnalyzedRows < r.TotalRows {
		b.WriteString(fmt.Sprintf(" of %d loaded", r.TotalRows))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("- Current NPA %.1f%%, Upcoming NPA %.1f%%\n", m.CurrentNPAPct, m.UpcomingNPAPct))
	b.WriteString(fmt.Sprintf("- Visit coverage %.1f%%, digital adoption %.1f%%\n", m.VisitCoveragePct, m.DigitalAdoptionPct))
	b.WriteString(fmt.Sprintf("- Risk score %.1f/100 (%s)\n", m.RiskScore, r.RiskBand))
	if r.RiskAlert {
		b.WriteString(fmt.Sprintf("- Score is above the %.1f alert threshold\n", AlertThreshold))
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[SAMPLE]\n")
		mdTable(&b, r.SampleHeader, r.Samples)
	}
	b.WriteString(fmt.Sprintf("\nReport generated at %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05")))
	return b.String()
}

// Markdown renders the metrics record alone.
func (m *Metrics) Markdown(currency string) string {
	var b strings.Builder
	writeMetricsSections(&b, m, currency)
	return b.String()
}

func writeMetricsSections(b *strings.Builder, m *Metrics, currency string) {
	b.WriteString("[KEY METRICS]\n")
	for _, c := range m.Cards() {
		b.WriteString(fmt.Sprintf("- %s: %s\n", c.Label, c.Value))
	}
	b.WriteString(fmt.Sprintf("Total loan amount: %s (avg %s)\n",
		formatMoney(m.TotalLoanAmount, currency), formatMoney(m.AvgLoanAmount, currency)))
	b.WriteString("\n[RISK]\n")
	b.WriteString(fmt.Sprintf("Score: %.1f/100\n", m.RiskScore))
	b.WriteString(fmt.Sprintf("Band: %s\n", RiskBand(m.RiskScore)))
	if m.RiskAlert() {
		b.WriteString(fmt.Sprintf("Alert threshold: %.1f (breached)\n", AlertThreshold))
	} else {
		b.WriteString(fmt.Sprintf("Alert threshold: %.1f (not breached)\n", AlertThreshold))
	}
}

var viewTitles = map[string]string{
	ViewComposition:      "PORTFOLIO COMPOSITION",
	ViewRiskZones:        "RISK ZONES",
	ViewProfessionRepay:  "PROFESSION REPAYMENT",
	ViewPaymentMix:       "PAYMENT MIX",
	ViewDPDDistribution:  "DPD DISTRIBUTION",
	ViewEMIVsLoan:        "EMI VS LOAN",
	ViewLegalNotices:     "LEGAL NOTICES",
	ViewVisitCoverage:    "VISIT COVERAGE",
	ViewIrregularReasons: "IRREGULAR REASONS",
}

// ViewMarkdown renders a single view's rows under its section header.
func ViewMarkdown(name string, rows any) string {
	var b strings.Builder
	writeViewSection(&b, name, rows)
	return b.String()
}

// Markdown renders every view in canonical order.
func (v *Views) Markdown() string {
	var b strings.Builder
	for i, name := range ViewNames() {
		if i > 0 {
			b.WriteString("\n")
		}
		writeViewSection(&b, name, v.rows(name))
	}
	return b.String()
}

func writeViewSection(b *strings.Builder, name string, rows any) {
	title := viewTitles[name]
	if title == "" {
		title = strings.ToUpper(name)
	}
	b.WriteString("[" + title + "]\n")
	switch v := rows.(type) {
	case []SegmentRow:
		table := make([][]string, 0, len(v))
		for _, r := range v {
			table = append(table, []string{r.Segment, strconv.Itoa(r.Count), fmt.Sprintf("%.2f", r.Pct)})
		}
		mdTable(b, []string{"Segment", "Customers", "Share %"}, table)
	case []ZoneRow:
		table := make([][]string, 0, len(v))
		for _, r := range v {
			table = append(table, []string{r.Zone, strconv.Itoa(r.Count)})
		}
		mdTable(b, []string{"Zone", "Customers"}, table)
	case []ProfessionRow:
		table := make([][]string, 0, len(v))
		for _, r := range v {
			table = append(table, []string{r.Profession, fmt.Sprintf("%.2f", r.RegularPct)})
		}
		mdTable(b, []string{"Profession", "Regular %"}, table)
	case []MethodRow:
		table := make([][]string, 0, len(v))
		for _, r := range v {
			table = append(table, []string{r.Method, strconv.Itoa(r.Count), fmt.Sprintf("%.2f", r.Pct)})
		}
		mdTable(b, []string{"Method", "Customers", "Share %"}, table)
	case []DPDBin:
		// Zero bins are elided in the text rendering.
		table := [][]string{}
		for _, bin := range v {
			if bin.Count == 0 {
				continue
			}
			table = append(table, []string{bin.Label, strconv.Itoa(bin.Count)})
		}
		if len(table) == 0 {
			b.WriteString("(no data)\n")
			return
		}
		mdTable(b, []string{"Days past due", "Customers"}, table)
	case []ScatterPoint:
		if len(v) == 0 {
			b.WriteString("(no points)\n")
			return
		}
		minLoan, maxLoan := v[0].LoanAmount, v[0].LoanAmount
		minPaid, maxPaid := v[0].PaidEMIs, v[0].PaidEMIs
		for _, p := range v[1:] {
			if p.LoanAmount < minLoan {
				minLoan = p.LoanAmount
			}
			if p.LoanAmount > maxLoan {
				maxLoan = p.LoanAmount
			}
			if p.PaidEMIs < minPaid {
				minPaid = p.PaidEMIs
			}
			if p.PaidEMIs > maxPaid {
				maxPaid = p.PaidEMIs
			}
		}
		b.WriteString(fmt.Sprintf("Points: %d (loan %v to %v, paid EMIs %d to %d)\n",
			len(v), minLoan, maxLoan, minPaid, maxPaid))
	case []CoverageRow:
		col := "Coverage %"
		if name == ViewLegalNotices {
			col = "Notice %"
		}
		table := make([][]string, 0, len(v))
		for _, r := range v {
			table = append(table, []string{r.Status, fmt.Sprintf("%.2f", r.Pct)})
		}
		mdTable(b, []string{"Status", col}, table)
	case []ReasonRow:
		if len(v) == 0 {
			b.WriteString("(none recorded)\n")
			return
		}
		table := make([][]string, 0, len(v))
		for _, r := range v {
			table = append(table, []string{r.Reason, strconv.Itoa(r.Count), fmt.Sprintf("%.2f", r.Pct)})
		}
		mdTable(b, []string{"Reason", "Count", "Share %"}, table)
	default:
		b.WriteString("(no data)\n")
	}
}

func (v *Views) rows(name string) any {
	switch name {
	case ViewComposition:
		return v.Composition
	case ViewRiskZones:
		return v.RiskZones
	case ViewProfessionRepay:
		return v.ProfessionRepay
	case ViewPaymentMix:
		return v.PaymentMix
	case ViewDPDDistribution:
		return v.DPDDistribution
	case ViewEMIVsLoan:
		return v.EMIVsLoan
	case ViewLegalNotices:
		return v.LegalNotices
	case ViewVisitCoverage:
		return v.VisitCoverage
	case ViewIrregularReasons:
		return v.IrregularReasons
	}
	return nil
}

func mdTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				cells[i] = safeCell(row[i])
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func safeCell(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return s
}

// formatMoney renders a decimal with thousands separators and two decimal
// places, prefixed by the currency symbol.
func formatMoney(d decimal.Decimal, symbol string) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return symbol + out
}
