package portfolio

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"Regular", StatusRegular},
		{"Monitored", StatusMonitored},
		{"Upcoming_NPA", StatusUpcomingNPA},
		{"Current_NPA", StatusCurrentNPA},
		{"Unclassified", StatusUnclassified},
		{" Regular ", StatusRegular},
		{"regular", StatusUnknown},
		{"Written_Off", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, c := range cases {
		if got := ParseStatus(c.in); got != c.want {
			t.Fatalf("ParseStatus(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusUpcomingNPA.Display(); got != "Upcoming NPA" {
		t.Fatalf("Display = %q, want %q", got, "Upcoming NPA")
	}
	if got := StatusCurrentNPA.Display(); got != "Current NPA" {
		t.Fatalf("Display = %q, want %q", got, "Current NPA")
	}
	if got := StatusRegular.Display(); got != "Regular" {
		t.Fatalf("Display = %q, want %q", got, "Regular")
	}
	// Out-of-set values group under the catch-all label.
	if got := StatusUnknown.Display(); got != "Unclassified" {
		t.Fatalf("Display = %q, want %q", got, "Unclassified")
	}
}

func TestParseSegment(t *testing.T) {
	cases := []struct {
		in   string
		want Segment
	}{
		{"Healthy", SegmentHealthy},
		{"Monitored", SegmentMonitored},
		{"Upcoming_NPA", SegmentUpcomingNPA},
		{"Current_NPA", SegmentCurrentNPA},
		{"Unclassified", SegmentUnclassified},
		{"healthy", SegmentUnknown},
		{"", SegmentUnknown},
	}
	for _, c := range cases {
		if got := ParseSegment(c.in); got != c.want {
			t.Fatalf("ParseSegment(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if got := SegmentUpcomingNPA.Display(); got != "Upcoming NPA" {
		t.Fatalf("Display = %q, want %q", got, "Upcoming NPA")
	}
}

func TestZoneFor(t *testing.T) {
	cases := []struct {
		in   Status
		want RiskZone
	}{
		{StatusRegular, ZoneGreen},
		{StatusMonitored, ZoneYellow},
		{StatusUpcomingNPA, ZoneOrange},
		{StatusCurrentNPA, ZoneRed},
		{StatusUnclassified, ZoneUnclassified},
		{StatusUnknown, ZoneUnclassified},
	}
	for _, c := range cases {
		if got := ZoneFor(c.in); got != c.want {
			t.Fatalf("ZoneFor(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestColorHints(t *testing.T) {
	if got := StatusRegular.Color(); got != "#2ecc71" {
		t.Fatalf("status color = %q, want %q", got, "#2ecc71")
	}
	if got := ZoneRed.Color(); got != "#e74c3c" {
		t.Fatalf("zone color = %q, want %q", got, "#e74c3c")
	}
	if got := MethodColor(MethodDigital); got != "#3498db" {
		t.Fatalf("method color = %q, want %q", got, "#3498db")
	}
	if got := MethodColor("Cheque"); got != "#95a5a6" {
		t.Fatalf("method color = %q, want %q", got, "#95a5a6")
	}
}
