// Package keymap defines the static key zone layout used to map blob
// coordinates to discrete key identifiers.
package keymap

import (
	"fmt"
	"image"
)

// KeyID identifies a single key in a layout.
type KeyID string

// NullKey marks a zone that occupies space in the layout but maps to no key.
// Resolving to a null zone is treated the same as resolving to nothing, but
// the zone still shadows any overlapping zones listed after it.
const NullKey KeyID = "NULL"

// Zone is one rectangular key region. Rect is the detection area, Center is
// the calibrated anchor point reported for the zone.
type Zone struct {
	Key    KeyID           `json:"key"`
	Rect   image.Rectangle `json:"rect"`
	Center image.Point     `json:"center"`
}

// Null reports whether the zone is a non-key placeholder.
func (z Zone) Null() bool {
	return z.Key == NullKey
}

// Contains reports whether p falls strictly inside the zone rectangle.
// Points exactly on an edge do not match; the boundary is exclusive on all
// four sides, matching the calibration tooling that produced the rectangles.
func (z Zone) Contains(p image.Point) bool {
	return p.X > z.Rect.Min.X && p.X < z.Rect.Max.X &&
		p.Y > z.Rect.Min.Y && p.Y < z.Rect.Max.Y
}

// Layout is an ordered set of zones. Order matters: when zones overlap, the
// earlier zone wins, which is how black piano keys take priority over the
// white keys beneath them.
type Layout struct {
	Name  string
	zones []Zone
}

// NewLayout validates the zones and builds a layout from them.
// A zone with a non-positive width or height is a configuration error.
func NewLayout(name string, zones []Zone) (*Layout, error) {
	for i, z := range zones {
		if z.Rect.Dx() <= 0 || z.Rect.Dy() <= 0 {
			return nil, fmt.Errorf("zone %d (%q): empty rectangle %v", i, z.Key, z.Rect)
		}
	}
	return &Layout{Name: name, zones: zones}, nil
}

// Zones returns the zones in priority order.
func (l *Layout) Zones() []Zone {
	return l.zones
}

// Len returns the number of zones in the layout.
func (l *Layout) Len() int {
	return len(l.zones)
}

// Resolve returns the first zone whose rectangle strictly contains p.
// The returned zone may be a null placeholder; callers decide whether that
// counts as a hit. Returns false if no zone contains p.
func (l *Layout) Resolve(p image.Point) (Zone, bool) {
	for _, z := range l.zones {
		if z.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}

// R is a shorthand constructor for a zone rectangle given its top-left
// corner and size, the format the calibration data is recorded in.
func R(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
