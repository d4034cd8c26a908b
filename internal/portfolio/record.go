package portfolio

import "strings"

// Column names recognized in a portfolio file header.
const (
	ColStatus          = "status"
	ColSegment         = "segment"
	ColPaymentMethod   = "payment_method"
	ColProfession      = "profession"
	ColPaymentRegular  = "payment_regular"
	ColVisitCovered    = "visit_covered"
	ColGotLegalNotice  = "got_legal_notice"
	ColLoanAmount      = "loan_amount"
	ColEMIAmount       = "emi_amount"
	ColPaidEMIs        = "paid_emis"
	ColDPD             = "dpd"
	ColIrregularReason = "irregular_reason"
)

// RequiredColumns lists every recognized column in canonical order. Schema
// errors report the first missing name in this order.
func RequiredColumns() []string {
	return []string{
		ColStatus, ColSegment, ColPaymentMethod, ColProfession,
		ColPaymentRegular, ColVisitCovered, ColGotLegalNotice,
		ColLoanAmount, ColEMIAmount, ColPaidEMIs, ColDPD, ColIrregularReason,
	}
}

// Payment method values the metrics engine compares against. The column
// itself is open; the mix view reports whatever values are present.
const (
	MethodCash    = "Cash"
	MethodDigital = "Digital"
)

// ReasonNone is the sentinel for accounts with no irregularity recorded.
const ReasonNone = "None"

// Chart color hints carried on view rows.
const (
	colorGreen  = "#2ecc71"
	colorYellow = "#f1c40f"
	colorOrange = "#e67e22"
	colorRed    = "#e74c3c"
	colorGrey   = "#95a5a6"
	colorBlue   = "#3498db"
)

// Status is the repayment status bucket of a loan account. The zero value
// marks a raw value outside the recognized set; such records stay in the
// dataset but are excluded from status bucket counts.
type Status int

const (
	StatusUnknown Status = iota
	StatusRegular
	StatusMonitored
	StatusUpcomingNPA
	StatusCurrentNPA
	StatusUnclassified
)

// Statuses returns the recognized statuses in canonical order.
func Statuses() []Status {
	return []Status{StatusRegular, StatusMonitored, StatusUpcomingNPA, StatusCurrentNPA, StatusUnclassified}
}

// ParseStatus maps a raw cell value to a Status. Unrecognized values parse
// to StatusUnknown rather than failing the load.
func ParseStatus(s string) Status {
	switch strings.TrimSpace(s) {
	case "Regular":
		return StatusRegular
	case "Monitored":
		return StatusMonitored
	case "Upcoming_NPA":
		return StatusUpcomingNPA
	case "Current_NPA":
		return StatusCurrentNPA
	case "Unclassified":
		return StatusUnclassified
	default:
		return StatusUnknown
	}
}

// String returns the canonical file token for the status.
func (s Status) String() string {
	switch s {
	case StatusRegular:
		return "Regular"
	case StatusMonitored:
		return "Monitored"
	case StatusUpcomingNPA:
		return "Upcoming_NPA"
	case StatusCurrentNPA:
		return "Current_NPA"
	case StatusUnclassified:
		return "Unclassified"
	default:
		return "Unknown"
	}
}

// Display returns the human label (underscores replaced). Out-of-set
// statuses group under the Unclassified label.
func (s Status) Display() string {
	if s == StatusUnknown {
		return "Unclassified"
	}
	return strings.ReplaceAll(s.String(), "_", " ")
}

// Color returns the chart color hint for the status.
func (s Status) Color() string {
	switch s {
	case StatusRegular:
		return colorGreen
	case StatusMonitored:
		return colorYellow
	case StatusUpcomingNPA:
		return colorOrange
	case StatusCurrentNPA:
		return colorRed
	default:
		return colorGrey
	}
}

// Segment is the portfolio health segment of a loan account. Zero value
// semantics match Status.
type Segment int

const (
	SegmentUnknown Segment = iota
	SegmentHealthy
	SegmentMonitored
	SegmentUpcomingNPA
	SegmentCurrentNPA
	SegmentUnclassified
)

// Segments returns the recognized segments in canonical order. The
// composition view always emits one row per entry, zero-filled.
func Segments() []Segment {
	return []Segment{SegmentHealthy, SegmentMonitored, SegmentUpcomingNPA, SegmentCurrentNPA, SegmentUnclassified}
}

// ParseSegment maps a raw cell value to a Segment; unrecognized values
// parse to SegmentUnknown.
func ParseSegment(s string) Segment {
	switch strings.TrimSpace(s) {
	case "Healthy":
		return SegmentHealthy
	case "Monitored":
		return SegmentMonitored
	case "Upcoming_NPA":
		return SegmentUpcomingNPA
	case "Current_NPA":
		return SegmentCurrentNPA
	case "Unclassified":
		return SegmentUnclassified
	default:
		return SegmentUnknown
	}
}

// String returns the canonical file token for the segment.
func (s Segment) String() string {
	switch s {
	case SegmentHealthy:
		return "Healthy"
	case SegmentMonitored:
		return "Monitored"
	case SegmentUpcomingNPA:
		return "Upcoming_NPA"
	case SegmentCurrentNPA:
		return "Current_NPA"
	case SegmentUnclassified:
		return "Unclassified"
	default:
		return "Unknown"
	}
}

// Display returns the human label for the segment.
func (s Segment) Display() string {
	if s == SegmentUnknown {
		return "Unclassified"
	}
	return strings.ReplaceAll(s.String(), "_", " ")
}

// Color returns the chart color hint for the segment.
func (s Segment) Color() string {
	switch s {
	case SegmentHealthy:
		return colorGreen
	case SegmentMonitored:
		return colorYellow
	case SegmentUpcomingNPA:
		return colorOrange
	case SegmentCurrentNPA:
		return colorRed
	default:
		return colorGrey
	}
}

// RiskZone is the synthetic classification derived from Status.
type RiskZone int

const (
	ZoneUnclassified RiskZone = iota
	ZoneGreen
	ZoneYellow
	ZoneOrange
	ZoneRed
)

// Zones returns the zones in canonical display order.
func Zones() []RiskZone {
	return []RiskZone{ZoneGreen, ZoneYellow, ZoneOrange, ZoneRed, ZoneUnclassified}
}

// ZoneFor derives the risk zone for a status. Anything outside the four
// mapped statuses lands in ZoneUnclassified.
func ZoneFor(s Status) RiskZone {
	switch s {
	case StatusRegular:
		return ZoneGreen
	case StatusMonitored:
		return ZoneYellow
	case StatusUpcomingNPA:
		return ZoneOrange
	case StatusCurrentNPA:
		return ZoneRed
	default:
		return ZoneUnclassified
	}
}

func (z RiskZone) String() string {
	switch z {
	case ZoneGreen:
		return "Green"
	case ZoneYellow:
		return "Yellow"
	case ZoneOrange:
		return "Orange"
	case ZoneRed:
		return "Red"
	default:
		return "Unclassified"
	}
}

// Color returns the chart color hint for the zone.
func (z RiskZone) Color() string {
	switch z {
	case ZoneGreen:
		return colorGreen
	case ZoneYellow:
		return colorYellow
	case ZoneOrange:
		return colorOrange
	case ZoneRed:
		return colorRed
	default:
		return colorGrey
	}
}

// MethodColor returns the chart color hint for a payment method value.
func MethodColor(method string) string {
	switch method {
	case MethodCash:
		return colorOrange
	case MethodDigital:
		return colorBlue
	default:
		return colorGrey
	}
}

// Record is one loan account parsed from one file row.
type Record struct {
	Status          Status
	Segment         Segment
	PaymentMethod   string
	Profession      string
	PaymentRegular  bool
	VisitCovered    bool
	GotLegalNotice  bool
	LoanAmount      float64
	EMIAmount       float64
	PaidEMIs        int
	DPD             int
	IrregularReason string

	// Original file fields, in header order. Kept so an exported subset
	// reproduces the input rows exactly.
	raw []string
}

// Fields returns the record's original file fields, in header order.
func (r Record) Fields() []string { return r.raw }
