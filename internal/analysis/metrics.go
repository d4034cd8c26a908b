package analysis

import (
	"fmt"
	"strconv"

	"github.com/loanlens-org/loanlens/internal/portfolio"
	"github.com/shopspring/decimal"
)

// Metrics is the portfolio-level metrics record computed over one dataset.
// Percentages are 0..100; money fields are exact decimals.
type Metrics struct {
	TotalCustomers        int             `json:"total_customers" yaml:"total_customers"`
	RegularCustomers      int             `json:"regular_customers" yaml:"regular_customers"`
	MonitoredCustomers    int             `json:"monitored_customers" yaml:"monitored_customers"`
	UpcomingNPACustomers  int             `json:"upcoming_npa_customers" yaml:"upcoming_npa_customers"`
	CurrentNPACustomers   int             `json:"current_npa_customers" yaml:"current_npa_customers"`
	UnclassifiedCustomers int             `json:"unclassified_customers" yaml:"unclassified_customers"`
	CurrentNPAPct         float64         `json:"current_npa_pct" yaml:"current_npa_pct"`
	UpcomingNPAPct        float64         `json:"upcoming_npa_pct" yaml:"upcoming_npa_pct"`
	RegularPayerPct       float64         `json:"regular_payer_pct" yaml:"regular_payer_pct"`
	DigitalCustomers      int             `json:"digital_customers" yaml:"digital_customers"`
	DigitalAdoptionPct    float64         `json:"digital_adoption_pct" yaml:"digital_adoption_pct"`
	VisitCoveredCustomers int             `json:"visit_covered_customers" yaml:"visit_covered_customers"`
	VisitCoveragePct      float64         `json:"visit_coverage_pct" yaml:"visit_coverage_pct"`
	TotalLoanAmount       decimal.Decimal `json:"total_loan_amount" yaml:"total_loan_amount"`
	AvgLoanAmount         decimal.Decimal `json:"avg_loan_amount" yaml:"avg_loan_amount"`
	RiskScore             float64         `json:"risk_score" yaml:"risk_score"`
}

// Risk score weights, on a 0..100 point scale.
const (
	weightCurrentNPA  = 40.0
	weightUpcomingNPA = 60.0
	weightVisitGap    = 15.0
)

// Gauge bands for the risk readout.
const (
	bandModerateMin = 30.0
	bandHighMin     = 60.0
)

// AlertThreshold is the score at or above which the portfolio needs
// attention.
const AlertThreshold = 47.5

// ComputeMetrics computes the metrics record over ds. It fails with a
// *portfolio.SchemaError if a column it needs is absent. An empty dataset
// yields all-zero metrics, including the risk score.
func ComputeMetrics(ds *portfolio.Dataset) (*Metrics, error) {
	err := ds.Require(
		portfolio.ColStatus,
		portfolio.ColPaymentMethod,
		portfolio.ColVisitCovered,
		portfolio.ColLoanAmount,
	)
	if err != nil {
		return nil, err
	}

	m := &Metrics{TotalLoanAmount: decimal.Zero, AvgLoanAmount: decimal.Zero}
	total := ds.Len()
	m.TotalCustomers = total
	sum := decimal.Zero
	for _, r := range ds.Records() {
		switch r.Status {
		case portfolio.StatusRegular:
			m.RegularCustomers++
		case portfolio.StatusMonitored:
			m.MonitoredCustomers++
		case portfolio.StatusUpcomingNPA:
			m.UpcomingNPACustomers++
		case portfolio.StatusCurrentNPA:
			m.CurrentNPACustomers++
		case portfolio.StatusUnclassified:
			m.UnclassifiedCustomers++
		}
		if r.PaymentMethod == portfolio.MethodDigital {
			m.DigitalCustomers++
		}
		if r.VisitCovered {
			m.VisitCoveredCustomers++
		}
		sum = sum.Add(decimal.NewFromFloat(r.LoanAmount))
	}
	m.TotalLoanAmount = sum
	if total > 0 {
		n := float64(total)
		m.CurrentNPAPct = float64(m.CurrentNPACustomers) / n * 100
		m.UpcomingNPAPct = float64(m.UpcomingNPACustomers) / n * 100
		m.RegularPayerPct = float64(m.RegularCustomers) / n * 100
		m.DigitalAdoptionPct = float64(m.DigitalCustomers) / n * 100
		m.VisitCoveragePct = float64(m.VisitCoveredCustomers) / n * 100
		m.AvgLoanAmount = sum.Div(decimal.NewFromInt(int64(total)))
		m.RiskScore = riskScore(m.CurrentNPAPct, m.UpcomingNPAPct, m.VisitCoveragePct)
	}
	return m, nil
}

// riskScore combines NPA shares and the uncovered-visit gap into a 0..100
// composite. The visit gap contributes two 15-point terms; the final clamp
// keeps the score on the scale.
func riskScore(currentPct, upcomingPct, visitPct float64) float64 {
	gap := (100 - visitPct) / 100
	score := currentPct/100*weightCurrentNPA +
		upcomingPct/100*weightUpcomingNPA +
		gap*weightVisitGap +
		gap*weightVisitGap
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RiskBand labels a score Low, Moderate, or High.
func RiskBand(score float64) string {
	switch {
	case score < bandModerateMin:
		return "Low"
	case score < bandHighMin:
		return "Moderate"
	default:
		return "High"
	}
}

// BandColor returns the gauge color for the band containing score.
func BandColor(score float64) string {
	switch {
	case score < bandModerateMin:
		return "lightgreen"
	case score < bandHighMin:
		return "yellow"
	default:
		return "salmon"
	}
}

// RiskAlert reports whether the score is at or above AlertThreshold.
func (m *Metrics) RiskAlert() bool { return m.RiskScore >= AlertThreshold }

// Card is one headline KPI for dashboard-style display.
type Card struct {
	Label string  `json:"label" yaml:"label"`
	Value string  `json:"value" yaml:"value"`
	Raw   float64 `json:"raw" yaml:"raw"`
}

// Cards returns the headline KPIs in display order.
func (m *Metrics) Cards() []Card {
	return []Card{
		{Label: "Total Customers", Value: strconv.Itoa(m.TotalCustomers), Raw: float64(m.TotalCustomers)},
		{Label: "Regular Payers", Value: fmt.Sprintf("%.1f%%", m.RegularPayerPct), Raw: m.RegularPayerPct},
		{Label: "Current NPA %", Value: fmt.Sprintf("%.1f%%", m.CurrentNPAPct), Raw: m.CurrentNPAPct},
		{Label: "Upcoming NPA %", Value: fmt.Sprintf("%.1f%%", m.UpcomingNPAPct), Raw: m.UpcomingNPAPct},
		{Label: "Visit Coverage", Value: fmt.Sprintf("%.1f%%", m.VisitCoveragePct), Raw: m.VisitCoveragePct},
		{Label: "Digital Adoption", Value: fmt.Sprintf("%.1f%%", m.DigitalAdoptionPct), Raw: m.DigitalAdoptionPct},
		{Label: "Risk Score", Value: fmt.Sprintf("%.1f/100", m.RiskScore), Raw: m.RiskScore},
	}
}
