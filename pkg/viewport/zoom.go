package viewport

import (
	"fmt"
	"math"
)

// ZoomConfig bounds the zoom range and sets how much scroll one doubling of
// scale takes.
type ZoomConfig struct {
	MinScale    float64
	MaxScale    float64
	Sensitivity float64
}

// DefaultZoomConfig returns a 0.25x..4x range with 400 scroll units per
// doubling.
func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{MinScale: 0.25, MaxScale: 4, Sensitivity: 400}
}

// Validate reports an unusable configuration.
func (c ZoomConfig) Validate() error {
	if !Positive(c.MinScale) {
		return fmt.Errorf("zoom min scale must be positive, got %v", c.MinScale)
	}
	if !Positive(c.MaxScale) || c.MaxScale <= c.MinScale {
		return fmt.Errorf("zoom max scale %v must exceed min scale %v", c.MaxScale, c.MinScale)
	}
	if !Positive(c.Sensitivity) {
		return fmt.Errorf("zoom sensitivity must be positive, got %v", c.Sensitivity)
	}
	return nil
}

// Positive reports whether f is a finite number greater than zero.
func Positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// Zoom accumulates scroll input, clamped to [0, MaxScroll], and maps it to
// a scale on a logarithmic curve: scale = 2^(s/Sensitivity + log2(MinScale)).
// Equal scroll steps therefore give equal perceived zoom steps, and the
// scale never leaves [MinScale, MaxScale].
type Zoom struct {
	cfg    ZoomConfig
	scroll float64
}

// NewZoom returns a zoom positioned at scale 1, or at the nearest bound if
// 1 is outside the configured range.
func NewZoom(cfg ZoomConfig) *Zoom {
	z := &Zoom{cfg: cfg}
	z.scroll = z.clamp(z.ScrollFor(1))
	return z
}

// MaxScroll is the accumulated scroll at which MaxScale is reached.
func (z *Zoom) MaxScroll() float64 {
	return z.cfg.Sensitivity * math.Log2(z.cfg.MaxScale/z.cfg.MinScale)
}

// Scroll returns the accumulated scroll quantity.
func (z *Zoom) Scroll() float64 { return z.scroll }

// Add accumulates a scroll delta and returns the clamped total. NaN
// deltas are ignored.
func (z *Zoom) Add(delta float64) float64 {
	if math.IsNaN(delta) {
		return z.scroll
	}
	z.scroll = z.clamp(z.scroll + delta)
	return z.scroll
}

// Scale returns the scale for the current accumulated scroll.
func (z *Zoom) Scale() float64 {
	return z.ScaleFor(z.scroll)
}

// ScaleFor maps a scroll quantity to a scale.
func (z *Zoom) ScaleFor(s float64) float64 {
	scale := math.Exp2(s/z.cfg.Sensitivity + math.Log2(z.cfg.MinScale))
	// Guard the endpoints against rounding in Exp2/Log2.
	return math.Min(math.Max(scale, z.cfg.MinScale), z.cfg.MaxScale)
}

// ScrollFor is the inverse of ScaleFor, unclamped.
func (z *Zoom) ScrollFor(scale float64) float64 {
	return z.cfg.Sensitivity * (math.Log2(scale) - math.Log2(z.cfg.MinScale))
}

func (z *Zoom) clamp(s float64) float64 {
	return math.Min(math.Max(s, 0), z.MaxScroll())
}
