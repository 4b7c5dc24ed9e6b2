package overview

import "fmt"

// Breakdown identifies the dimension a tile table is grouped by. The set is
// closed: adding a value requires updating PropertyName and ColumnTitle, which
// switch over every case so a missing entry fails review, not rendering.
type Breakdown string

const (
	BreakdownPage                   Breakdown = "page"
	BreakdownInitialPage            Breakdown = "initial_page"
	BreakdownInitialReferringDomain Breakdown = "initial_referring_domain"
	BreakdownInitialUTMSource       Breakdown = "initial_utm_source"
	BreakdownInitialUTMCampaign     Breakdown = "initial_utm_campaign"
	BreakdownBrowser                Breakdown = "browser"
	BreakdownOS                     Breakdown = "os"
	BreakdownDeviceType             Breakdown = "device_type"
)

// Breakdowns returns every member of the enumeration in display order.
func Breakdowns() []Breakdown {
	return []Breakdown{
		BreakdownPage,
		BreakdownInitialPage,
		BreakdownInitialReferringDomain,
		BreakdownInitialUTMSource,
		BreakdownInitialUTMCampaign,
		BreakdownBrowser,
		BreakdownOS,
		BreakdownDeviceType,
	}
}

// ParseBreakdown validates a raw tag against the enumeration.
func ParseBreakdown(raw string) (Breakdown, error) {
	for _, b := range Breakdowns() {
		if string(b) == raw {
			return b, nil
		}
	}
	return "", fmt.Errorf("overview: unknown breakdown %q", raw)
}

// PropertyName maps the breakdown to the event property toggled when a value
// cell is clicked.
func (b Breakdown) PropertyName() string {
	switch b {
	case BreakdownPage:
		return "$pathname"
	case BreakdownInitialPage:
		return "$initial_pathname"
	case BreakdownInitialReferringDomain:
		return "$initial_referrer"
	case BreakdownInitialUTMSource:
		return "$initial_utm_source"
	case BreakdownInitialUTMCampaign:
		return "$initial_utm_campaign"
	case BreakdownBrowser:
		return "$browser"
	case BreakdownOS:
		return "$os"
	case BreakdownDeviceType:
		return "$device_type"
	}
	return ""
}

// ColumnTitle is the header shown above the breakdown value column.
func (b Breakdown) ColumnTitle() string {
	switch b {
	case BreakdownPage:
		return "Path"
	case BreakdownInitialPage:
		return "Initial Path"
	case BreakdownInitialReferringDomain:
		return "Referring Domain"
	case BreakdownInitialUTMSource:
		return "UTM Source"
	case BreakdownInitialUTMCampaign:
		return "UTM Campaign"
	case BreakdownBrowser:
		return "Browser"
	case BreakdownOS:
		return "OS"
	case BreakdownDeviceType:
		return "Device Type"
	}
	return ""
}

// Valid reports whether the breakdown belongs to the enumeration.
func (b Breakdown) Valid() bool {
	_, err := ParseBreakdown(string(b))
	return err == nil
}
