package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/loanlens-org/loanlens/internal/portfolio"
	"github.com/shopspring/decimal"
)

func referenceSession(t *testing.T) *portfolio.Session {
	t.Helper()
	return portfolio.NewSession("portfolio.csv", loadDataset(t, referenceCSV))
}

func TestBuildReportReference(t *testing.T) {
	s := referenceSession(t)
	rep, err := BuildReport(s, ReportOptions{SampleRows: 2, Currency: "₹"})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if rep.SessionID != s.ID || rep.Source != "portfolio.csv" {
		t.Fatalf("identity fields = %q/%q", rep.SessionID, rep.Source)
	}
	if rep.TotalRows != 4 || rep.AnalyzedRows != 4 {
		t.Fatalf("rows = %d/%d, want 4/4", rep.TotalRows, rep.AnalyzedRows)
	}
	if rep.RiskBand != "Moderate" || rep.RiskColor != "yellow" || !rep.RiskAlert {
		t.Fatalf("risk = %s/%s alert=%v, want Moderate/yellow with alert", rep.RiskBand, rep.RiskColor, rep.RiskAlert)
	}
	if len(rep.Cards) != 7 {
		t.Fatalf("len(Cards) = %d, want 7", len(rep.Cards))
	}
	if len(rep.Samples) != 2 || len(rep.SampleHeader) != 12 {
		t.Fatalf("samples = %d rows, header %d cols", len(rep.Samples), len(rep.SampleHeader))
	}
	if rep.Samples[0][0] != "Regular" || rep.Samples[1][0] != "Current_NPA" {
		t.Fatalf("sample rows = %v", rep.Samples)
	}
	if rep.GeneratedAt.IsZero() {
		t.Fatalf("GeneratedAt not set")
	}
}

func TestBuildReportClampsSampleRows(t *testing.T) {
	rep, err := BuildReport(referenceSession(t), DefaultReportOptions())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(rep.Samples) != 4 {
		t.Fatalf("len(Samples) = %d, want all 4 rows", len(rep.Samples))
	}
}

func TestBuildReportRowLimit(t *testing.T) {
	s := referenceSession(t)
	s.SetRowLimit(2)
	rep, err := BuildReport(s, DefaultReportOptions())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if rep.TotalRows != 4 || rep.AnalyzedRows != 2 {
		t.Fatalf("rows = %d/%d, want 4/2", rep.TotalRows, rep.AnalyzedRows)
	}
	md := rep.Markdown()
	if !strings.Contains(md, "Rows: 4 (analyzing first 2)") {
		t.Fatalf("markdown missing row-limit note:\n%s", md)
	}
	if !strings.Contains(md, "- 2 accounts analyzed of 4 loaded") {
		t.Fatalf("markdown missing limited summary line:\n%s", md)
	}
}

func TestBuildReportSchemaError(t *testing.T) {
	ds := loadDataset(t, "account_id\n1\n")
	_, err := BuildReport(portfolio.NewSession("thin.csv", ds), DefaultReportOptions())
	var se *portfolio.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *portfolio.SchemaError", err)
	}
}

func TestReportMarkdown(t *testing.T) {
	rep, err := BuildReport(referenceSession(t), DefaultReportOptions())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	md := rep.Markdown()
	for _, want := range []string{
		"[PORTFOLIO]",
		"File: portfolio.csv",
		"Rows: 4\n",
		"[KEY METRICS]",
		"- Risk Score: 50.0/100",
		"Total loan amount: ₹580,000.50 (avg ₹145,000.13)",
		"[RISK]",
		"Alert threshold: 47.5 (breached)",
		"[PORTFOLIO COMPOSITION]",
		"| Current NPA | 2 | 50.00 |",
		"[RISK ZONES]",
		"| Red | 2 |",
		"[PROFESSION REPAYMENT]",
		"| Farmer | 50.00 |",
		"[PAYMENT MIX]",
		"[DPD DISTRIBUTION]",
		"[EMI VS LOAN]",
		"Points: 4 (loan 80000 to 250000.5, paid EMIs 1 to 12)",
		"[LEGAL NOTICES]",
		"| Status | Notice % |",
		"[VISIT COVERAGE]",
		"| Current NPA | 0.00 |",
		"[IRREGULAR REASONS]",
		"| Business loss | 1 | 33.33 |",
		"[SUMMARY]",
		"- Risk score 50.0/100 (Moderate)",
		"- Score is above the 47.5 alert threshold",
		"[SAMPLE]",
		"Report generated at",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMetricsMarkdown(t *testing.T) {
	m, err := ComputeMetrics(loadDataset(t, referenceCSV))
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	md := m.Markdown("₹")
	for _, want := range []string{
		"[KEY METRICS]",
		"- Total Customers: 4",
		"Total loan amount: ₹580,000.50 (avg ₹145,000.13)",
		"[RISK]",
		"Score: 50.0/100",
		"Band: Moderate",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestViewMarkdownSingleView(t *testing.T) {
	rows, err := BuildComposition(loadDataset(t, referenceCSV))
	if err != nil {
		t.Fatalf("BuildComposition: %v", err)
	}
	md := ViewMarkdown(ViewComposition, rows)
	if !strings.Contains(md, "[PORTFOLIO COMPOSITION]") || !strings.Contains(md, "| Healthy | 1 | 25.00 |") {
		t.Fatalf("unexpected rendering:\n%s", md)
	}
}

func TestViewsMarkdownAllSections(t *testing.T) {
	v, err := BuildViews(loadDataset(t, referenceCSV))
	if err != nil {
		t.Fatalf("BuildViews: %v", err)
	}
	md := v.Markdown()
	for _, name := range ViewNames() {
		if !strings.Contains(md, "["+viewTitles[name]+"]") {
			t.Fatalf("markdown missing section for %s:\n%s", name, md)
		}
	}
}

func TestViewMarkdownEmptyStates(t *testing.T) {
	if md := ViewMarkdown(ViewIrregularReasons, []ReasonRow{}); !strings.Contains(md, "(none recorded)") {
		t.Fatalf("reasons rendering = %q", md)
	}
	if md := ViewMarkdown(ViewDPDDistribution, []DPDBin{}); !strings.Contains(md, "(no data)") {
		t.Fatalf("dpd rendering = %q", md)
	}
	if md := ViewMarkdown(ViewEMIVsLoan, []ScatterPoint{}); !strings.Contains(md, "(no points)") {
		t.Fatalf("scatter rendering = %q", md)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in     string
		symbol string
		want   string
	}{
		{"1234567.891", "₹", "₹1,234,567.89"},
		{"580000.5", "₹", "₹580,000.50"},
		{"-1500", "$", "$-1,500.00"},
		{"0", "₹", "₹0.00"},
		{"999.999", "", "1,000.00"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("decimal %q: %v", c.in, err)
		}
		if got := formatMoney(d, c.symbol); got != c.want {
			t.Fatalf("formatMoney(%s, %q) = %q, want %q", c.in, c.symbol, got, c.want)
		}
	}
}

func TestSafeCell(t *testing.T) {
	if got := safeCell("a|b\nc"); got != "a/b c" {
		t.Fatalf("safeCell = %q", got)
	}
	long := strings.Repeat("x", 100)
	got := safeCell(long)
	if len(got) != 80 || !strings.HasSuffix(got, "...") {
		t.Fatalf("safeCell long = %q (len %d)", got, len(got))
	}
}
