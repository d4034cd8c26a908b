package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/loanlens-org/loanlens/internal/portfolio"
)

// View names accepted by BuildView, in canonical order.
const (
	ViewComposition      = "composition"
	ViewRiskZones        = "risk-zones"
	ViewProfessionRepay  = "profession-repayment"
	ViewPaymentMix       = "payment-mix"
	ViewDPDDistribution  = "dpd-distribution"
	ViewEMIVsLoan        = "emi-vs-loan"
	ViewLegalNotices     = "legal-notices"
	ViewVisitCoverage    = "visit-coverage"
	ViewIrregularReasons = "irregular-reasons"
)

// ViewNames returns the view names in canonical order.
func ViewNames() []string {
	return []string{
		ViewComposition, ViewRiskZones, ViewProfessionRepay, ViewPaymentMix,
		ViewDPDDistribution, ViewEMIVsLoan, ViewLegalNotices,
		ViewVisitCoverage, ViewIrregularReasons,
	}
}

// Views bundles every analytical view computed over one dataset. All rows
// are chart-ready: labels, counts, and color hints, no rendering.
type Views struct {
	Composition      []SegmentRow    `json:"composition" yaml:"composition"`
	RiskZones        []ZoneRow       `json:"risk_zones" yaml:"risk_zones"`
	ProfessionRepay  []ProfessionRow `json:"profession_repayment" yaml:"profession_repayment"`
	PaymentMix       []MethodRow     `json:"payment_mix" yaml:"payment_mix"`
	DPDDistribution  []DPDBin        `json:"dpd_distribution" yaml:"dpd_distribution"`
	EMIVsLoan        []ScatterPoint  `json:"emi_vs_loan" yaml:"emi_vs_loan"`
	LegalNotices     []CoverageRow   `json:"legal_notices" yaml:"legal_notices"`
	VisitCoverage    []CoverageRow   `json:"visit_coverage" yaml:"visit_coverage"`
	IrregularReasons []ReasonRow     `json:"irregular_reasons" yaml:"irregular_reasons"`
}

// SegmentRow is one row of the portfolio composition view.
type SegmentRow struct {
	Segment string  `json:"segment" yaml:"segment"`
	Count   int     `json:"customers" yaml:"customers"`
	Pct     float64 `json:"percentage" yaml:"percentage"`
	Color   string  `json:"color" yaml:"color"`
}

// ZoneRow is one row of the risk zone view.
type ZoneRow struct {
	Zone  string `json:"zone" yaml:"zone"`
	Count int    `json:"count" yaml:"count"`
	Color string `json:"color" yaml:"color"`
}

// ProfessionRow is one row of the profession repayment view.
type ProfessionRow struct {
	Profession string  `json:"profession" yaml:"profession"`
	RegularPct float64 `json:"regular_pct" yaml:"regular_pct"`
}

// MethodRow is one row of the payment method mix view.
type MethodRow struct {
	Method string  `json:"method" yaml:"method"`
	Count  int     `json:"count" yaml:"count"`
	Pct    float64 `json:"percentage" yaml:"percentage"`
	Color  string  `json:"color" yaml:"color"`
}

// DPDBin is one bucket of the days-past-due histogram.
type DPDBin struct {
	Label string  `json:"label" yaml:"label"`
	From  float64 `json:"from" yaml:"from"`
	To    float64 `json:"to" yaml:"to"`
	Count int     `json:"count" yaml:"count"`
}

// ScatterPoint is one raw point of the EMI vs loan view.
type ScatterPoint struct {
	PaidEMIs   int     `json:"paid_emis" yaml:"paid_emis"`
	LoanAmount float64 `json:"loan_amount" yaml:"loan_amount"`
	EMIAmount  float64 `json:"emi_amount" yaml:"emi_amount"`
	Status     string  `json:"status" yaml:"status"`
	Color      string  `json:"color" yaml:"color"`
}

// CoverageRow is one row of a coverage-by-status view.
type CoverageRow struct {
	Status string  `json:"status" yaml:"status"`
	Pct    float64 `json:"pct" yaml:"pct"`
}

// ReasonRow is one row of the irregular reasons view.
type ReasonRow struct {
	Reason string  `json:"reason" yaml:"reason"`
	Count  int     `json:"count" yaml:"count"`
	Pct    float64 `json:"percentage" yaml:"percentage"`
}

// BuildViews assembles all views. The first schema error aborts the whole
// build.
func BuildViews(ds *portfolio.Dataset) (*Views, error) {
	v := &Views{}
	var err error
	if v.Composition, err = BuildComposition(ds); err != nil {
		return nil, err
	}
	if v.RiskZones, err = BuildRiskZones(ds); err != nil {
		return nil, err
	}
	if v.ProfessionRepay, err = BuildProfessionRepayment(ds); err != nil {
		return nil, err
	}
	if v.PaymentMix, err = BuildPaymentMix(ds); err != nil {
		return nil, err
	}
	if v.DPDDistribution, err = BuildDPDDistribution(ds); err != nil {
		return nil, err
	}
	if v.EMIVsLoan, err = BuildEMIVsLoan(ds); err != nil {
		return nil, err
	}
	if v.LegalNotices, err = BuildLegalNotices(ds); err != nil {
		return nil, err
	}
	if v.VisitCoverage, err = BuildVisitCoverage(ds); err != nil {
		return nil, err
	}
	if v.IrregularReasons, err = BuildIrregularReasons(ds); err != nil {
		return nil, err
	}
	return v, nil
}

// BuildView computes a single view by name. The result is the view's row
// slice.
func BuildView(ds *portfolio.Dataset, name string) (any, error) {
	switch name {
	case ViewComposition:
		return BuildComposition(ds)
	case ViewRiskZones:
		return BuildRiskZones(ds)
	case ViewProfessionRepay:
		return BuildProfessionRepayment(ds)
	case ViewPaymentMix:
		return BuildPaymentMix(ds)
	case ViewDPDDistribution:
		return BuildDPDDistribution(ds)
	case ViewEMIVsLoan:
		return BuildEMIVsLoan(ds)
	case ViewLegalNotices:
		return BuildLegalNotices(ds)
	case ViewVisitCoverage:
		return BuildVisitCoverage(ds)
	case ViewIrregularReasons:
		return BuildIrregularReasons(ds)
	default:
		return nil, fmt.Errorf("unknown view %q (valid: %s)", name, strings.Join(ViewNames(), ", "))
	}
}

// BuildComposition counts customers per segment. It always emits exactly
// one row per recognized segment, zero-filled, in canonical order. The
// percentage denominator is the sum of the five bucket counts; out-of-set
// segment values are excluded.
func BuildComposition(ds *portfolio.Dataset) ([]SegmentRow, error) {
	if err := ds.Require(portfolio.ColSegment); err != nil {
		return nil, err
	}
	counts := make(map[portfolio.Segment]int)
	for _, r := range ds.Records() {
		counts[r.Segment]++
	}
	segs := portfolio.Segments()
	total := 0
	for _, s := range segs {
		total += counts[s]
	}
	rows := make([]SegmentRow, 0, len(segs))
	for _, s := range segs {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[s]) / float64(total) * 100
		}
		rows = append(rows, SegmentRow{
			Segment: s.Display(),
			Count:   counts[s],
			Pct:     round2(pct),
			Color:   s.Color(),
		})
	}
	return rows, nil
}

// BuildRiskZones counts records per derived risk zone, canonical zone
// order, zero-count zones omitted.
func BuildRiskZones(ds *portfolio.Dataset) ([]ZoneRow, error) {
	if err := ds.Require(portfolio.ColStatus); err != nil {
		return nil, err
	}
	counts := make(map[portfolio.RiskZone]int)
	for _, r := range ds.Records() {
		counts[portfolio.ZoneFor(r.Status)]++
	}
	rows := []ZoneRow{}
	for _, z := range portfolio.Zones() {
		if counts[z] == 0 {
			continue
		}
		rows = append(rows, ZoneRow{Zone: z.String(), Count: counts[z], Color: z.Color()})
	}
	return rows, nil
}

// BuildProfessionRepayment reports the share of regular payers per
// profession, professions sorted alphabetically. Rows with an empty
// profession cell are skipped.
func BuildProfessionRepayment(ds *portfolio.Dataset) ([]ProfessionRow, error) {
	if err := ds.Require(portfolio.ColProfession, portfolio.ColPaymentRegular); err != nil {
		return nil, err
	}
	regular := make(map[string]int)
	seen := make(map[string]int)
	for _, r := range ds.Records() {
		if r.Profession == "" {
			continue
		}
		seen[r.Profession]++
		if r.PaymentRegular {
			regular[r.Profession]++
		}
	}
	names := make([]string, 0, len(seen))
	for p := range seen {
		names = append(names, p)
	}
	sort.Strings(names)
	rows := make([]ProfessionRow, 0, len(names))
	for _, p := range names {
		rows = append(rows, ProfessionRow{
			Profession: p,
			RegularPct: round2(float64(regular[p]) / float64(seen[p]) * 100),
		})
	}
	return rows, nil
}

// BuildPaymentMix counts records per payment method present in the data,
// ordered by count descending with alphabetical ties. Rows with an empty
// method cell are skipped.
func BuildPaymentMix(ds *portfolio.Dataset) ([]MethodRow, error) {
	if err := ds.Require(portfolio.ColPaymentMethod); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	total := 0
	for _, r := range ds.Records() {
		if r.PaymentMethod == "" {
			continue
		}
		counts[r.PaymentMethod]++
		total++
	}
	rows := make([]MethodRow, 0, len(counts))
	for m, n := range counts {
		rows = append(rows, MethodRow{
			Method: m,
			Count:  n,
			Pct:    round2(float64(n) / float64(total) * 100),
			Color:  portfolio.MethodColor(m),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Method < rows[j].Method
		}
		return rows[i].Count > rows[j].Count
	})
	return rows, nil
}

// dpdBinCount matches the fixed histogram resolution of the dashboard.
const dpdBinCount = 30

// BuildDPDDistribution buckets days-past-due into equal-width bins over the
// observed range. A degenerate range yields a single bin; an empty dataset
// yields no bins.
func BuildDPDDistribution(ds *portfolio.Dataset) ([]DPDBin, error) {
	if err := ds.Require(portfolio.ColDPD); err != nil {
		return nil, err
	}
	recs := ds.Records()
	if len(recs) == 0 {
		return []DPDBin{}, nil
	}
	lo, hi := recs[0].DPD, recs[0].DPD
	for _, r := range recs[1:] {
		if r.DPD < lo {
			lo = r.DPD
		}
		if r.DPD > hi {
			hi = r.DPD
		}
	}
	if lo == hi {
		return []DPDBin{{
			Label: fmt.Sprintf("%d", lo),
			From:  float64(lo),
			To:    float64(hi),
			Count: len(recs),
		}}, nil
	}
	width := float64(hi-lo) / dpdBinCount
	bins := make([]DPDBin, dpdBinCount)
	for i := range bins {
		from := float64(lo) + width*float64(i)
		to := from + width
		bins[i] = DPDBin{
			Label: fmt.Sprintf("%v-%v", round2(from), round2(to)),
			From:  from,
			To:    to,
		}
	}
	for _, r := range recs {
		i := int(float64(r.DPD-lo) / width)
		if i >= dpdBinCount {
			// The maximum lands in the last (closed) bin.
			i = dpdBinCount - 1
		}
		bins[i].Count++
	}
	return bins, nil
}

// BuildEMIVsLoan passes raw points through, no aggregation.
func BuildEMIVsLoan(ds *portfolio.Dataset) ([]ScatterPoint, error) {
	err := ds.Require(
		portfolio.ColStatus,
		portfolio.ColLoanAmount,
		portfolio.ColEMIAmount,
		portfolio.ColPaidEMIs,
	)
	if err != nil {
		return nil, err
	}
	pts := make([]ScatterPoint, 0, ds.Len())
	for _, r := range ds.Records() {
		pts = append(pts, ScatterPoint{
			PaidEMIs:   r.PaidEMIs,
			LoanAmount: r.LoanAmount,
			EMIAmount:  r.EMIAmount,
			Status:     r.Status.Display(),
			Color:      r.Status.Color(),
		})
	}
	return pts, nil
}

// BuildLegalNotices reports the share of accounts with a legal notice per
// status display label.
func BuildLegalNotices(ds *portfolio.Dataset) ([]CoverageRow, error) {
	if err := ds.Require(portfolio.ColStatus, portfolio.ColGotLegalNotice); err != nil {
		return nil, err
	}
	return coverageByStatus(ds, func(r portfolio.Record) bool { return r.GotLegalNotice }), nil
}

// BuildVisitCoverage reports the share of field-visited accounts per status
// display label.
func BuildVisitCoverage(ds *portfolio.Dataset) ([]CoverageRow, error) {
	if err := ds.Require(portfolio.ColStatus, portfolio.ColVisitCovered); err != nil {
		return nil, err
	}
	return coverageByStatus(ds, func(r portfolio.Record) bool { return r.VisitCovered }), nil
}

// coverageByStatus groups by status display label in canonical order,
// emitting only groups present in the data. Out-of-set statuses fall into
// the Unclassified label via Display.
func coverageByStatus(ds *portfolio.Dataset, pick func(portfolio.Record) bool) []CoverageRow {
	hits := make(map[string]int)
	seen := make(map[string]int)
	for _, r := range ds.Records() {
		label := r.Status.Display()
		seen[label]++
		if pick(r) {
			hits[label]++
		}
	}
	rows := []CoverageRow{}
	for _, s := range portfolio.Statuses() {
		label := s.Display()
		if seen[label] == 0 {
			continue
		}
		rows = append(rows, CoverageRow{
			Status: label,
			Pct:    round2(float64(hits[label]) / float64(seen[label]) * 100),
		})
	}
	return rows
}

// BuildIrregularReasons counts irregularity reasons, excluding the "None"
// sentinel and empty cells. Percentages are of the non-None subset; an
// empty result is valid.
func BuildIrregularReasons(ds *portfolio.Dataset) ([]ReasonRow, error) {
	if err := ds.Require(portfolio.ColIrregularReason); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	total := 0
	for _, r := range ds.Records() {
		if r.IrregularReason == "" || r.IrregularReason == portfolio.ReasonNone {
			continue
		}
		counts[r.IrregularReason]++
		total++
	}
	rows := []ReasonRow{}
	for reason, n := range counts {
		rows = append(rows, ReasonRow{
			Reason: reason,
			Count:  n,
			Pct:    round2(float64(n) / float64(total) * 100),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Reason < rows[j].Reason
		}
		return rows[i].Count > rows[j].Count
	})
	return rows, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
