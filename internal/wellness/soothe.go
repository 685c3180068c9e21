package wellness

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultHue   = 210 // soothing blue
	DefaultSpeed = 6
	MinSpeed     = 2
	MaxSpeed     = 12

	sootheSaturation = 0.70
	sootheLightness  = 0.65
)

// Soothe is the ambient color animation: a three stop gradient starting at
// Hue that drifts back and forth over Speed seconds.
type Soothe struct {
	Hue   int
	Speed int
}

func NewSoothe() Soothe {
	return Soothe{Hue: DefaultHue, Speed: DefaultSpeed}
}

// Normalize wraps the hue into 0..359 and clamps speed to MinSpeed..MaxSpeed.
func (s Soothe) Normalize() Soothe {
	s.Hue = ((s.Hue % 360) + 360) % 360
	if s.Speed < MinSpeed {
		s.Speed = MinSpeed
	}
	if s.Speed > MaxSpeed {
		s.Speed = MaxSpeed
	}
	return s
}

// Stops returns the gradient colors at hue, hue+40 and hue+80 as hex.
func (s Soothe) Stops() []string {
	return s.stopsAt(0)
}

// StopsAt returns the gradient shifted by the animation position at
// elapsed seconds. The shift swings between 0 and 40 degrees over one Speed
// period and back, like an alternating CSS animation.
func (s Soothe) StopsAt(elapsed float64) []string {
	n := s.Normalize()
	period := float64(n.Speed)
	pos := math.Mod(elapsed, 2*period)
	if pos > period {
		pos = 2*period - pos
	}
	return n.stopsAt(40 * pos / period)
}

func (s Soothe) stopsAt(shift float64) []string {
	n := s.Normalize()
	out := make([]string, 0, 3)
	for _, off := range []float64{0, 40, 80} {
		h := math.Mod(float64(n.Hue)+off+shift, 360)
		out = append(out, colorful.Hsl(h, sootheSaturation, sootheLightness).Hex())
	}
	return out
}
