package model

// WindowRecord is a top-level window as reported by the window directory.
// Bounds are logical, screen-absolute.
type WindowRecord struct {
	ID               int    `yaml:"id"                  json:"id"`
	Title            string `yaml:"title"               json:"title"`
	OwnerName        string `yaml:"owner"               json:"owner"`
	PID              int    `yaml:"pid,omitempty"       json:"pid,omitempty"`
	Bounds           Rect   `yaml:"bounds"              json:"bounds"`
	OnPrimaryDisplay bool   `yaml:"on_primary_display"  json:"on_primary_display"`
}

// Display location tags for windows outside the primary display.
const (
	LocationPrimary         = "primary"
	LocationSecondaryLeft   = "secondary-left"
	LocationSecondaryRight  = "secondary-right"
	LocationSecondaryTop    = "secondary-top"
	LocationSecondaryBottom = "secondary-bottom"
)

// DisplayLocation classifies bounds against the primary display's logical size.
// Bounds that overflow an edge are tagged by the first overflowing edge in
// left, right, top, bottom order.
func DisplayLocation(bounds Rect, primary Size) string {
	switch {
	case bounds.X < 0:
		return LocationSecondaryLeft
	case bounds.X+bounds.Width > primary.Width:
		return LocationSecondaryRight
	case bounds.Y < 0:
		return LocationSecondaryTop
	case bounds.Y+bounds.Height > primary.Height:
		return LocationSecondaryBottom
	default:
		return LocationPrimary
	}
}

// WithPrimaryFlag returns a copy of w with OnPrimaryDisplay derived from primary.
func (w WindowRecord) WithPrimaryFlag(primary Size) WindowRecord {
	w.OnPrimaryDisplay = DisplayLocation(w.Bounds, primary) == LocationPrimary
	return w
}
