package palette

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for strings that are neither #hex nor hsl().
var ErrInvalidColor = errors.New("invalid color")

// Channel selects one HSL component.
type Channel int

const (
	Hue Channel = iota
	Saturation
	Lightness
	Alpha
)

func (c Channel) String() string {
	switch c {
	case Hue:
		return "hue"
	case Saturation:
		return "saturation"
	case Lightness:
		return "lightness"
	case Alpha:
		return "alpha"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// HSL is a color in integer hue/saturation/lightness form. Saturation,
// lightness and alpha are percentages. Values are only clamped when
// rendered, so a chain of adjustments never loses range mid-way.
type HSL struct {
	Hue        int
	Saturation int
	Lightness  int
	Alpha      int
	HasAlpha   bool
}

var hslStripper = strings.NewReplacer(
	"hsla", " ",
	"hsl", " ",
	"(", " ",
	")", " ",
	",", " ",
	"/", " ",
	"%", " ",
)

// ParseHSL reads "#rgb", "#rrggbb", "hsl(h s% l%)", "hsl(h, s%, l%)" or the
// hsla/slash-alpha forms. Hex colors are converted and have no alpha.
func ParseHSL(s string) (HSL, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return HSL{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	fields := strings.Fields(hslStripper.Replace(s))
	if len(fields) < 3 || len(fields) > 4 {
		return HSL{}, fmt.Errorf("%w: %q needs 3 or 4 components", ErrInvalidColor, s)
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: %q component %q: %v", ErrInvalidColor, s, f, err)
		}
		values[i] = v
	}

	c := HSL{
		Hue:        int(values[0]),
		Saturation: int(values[1]),
		Lightness:  int(values[2]),
	}
	if len(values) == 4 {
		a := values[3]
		if a <= 1 {
			a *= 100
		}
		c.Alpha, c.HasAlpha = int(math.Round(a)), true
	}
	return c, nil
}

func parseHex(s string) (HSL, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return HSL{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	h, sat, l := col.Hsl()
	return HSL{
		Hue:        int(math.Round(h)) % 360,
		Saturation: int(math.Round(sat * 100)),
		Lightness:  int(math.Round(l * 100)),
	}, nil
}

// Adjustment changes one channel, either to an absolute value or by a
// relative delta.
type Adjustment struct {
	Channel  Channel
	Value    int
	Relative bool
}

// Set returns an adjustment replacing ch with v.
func Set(ch Channel, v int) Adjustment {
	return Adjustment{Channel: ch, Value: v}
}

// Shift returns an adjustment adding d to ch.
func Shift(ch Channel, d int) Adjustment {
	return Adjustment{Channel: ch, Value: d, Relative: true}
}

// ParseAdjustment reads "+8" or "-24" as a relative delta and a bare
// integer such as "99" as an absolute value.
func ParseAdjustment(ch Channel, s string) (Adjustment, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return Adjustment{}, fmt.Errorf("adjust %s by %q: %w", ch, s, err)
	}
	relative := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
	return Adjustment{Channel: ch, Value: v, Relative: relative}, nil
}

// Modify returns a copy of c with every adjustment applied in order.
// Adjusting alpha on an opaque color makes it translucent.
func (c HSL) Modify(adjustments ...Adjustment) HSL {
	for _, adj := range adjustments {
		field := c.field(adj.Channel)
		if field == nil {
			continue
		}
		if adj.Relative {
			*field += adj.Value
		} else {
			*field = adj.Value
		}
		if adj.Channel == Alpha {
			c.HasAlpha = true
		}
	}
	return c
}

func (c *HSL) field(ch Channel) *int {
	switch ch {
	case Hue:
		return &c.Hue
	case Saturation:
		return &c.Saturation
	case Lightness:
		return &c.Lightness
	case Alpha:
		if !c.HasAlpha {
			c.Alpha = 100
		}
		return &c.Alpha
	}
	return nil
}

// Clamped returns c with hue in [0, 359] and the percentages in [0, 100].
// Hue is clamped rather than wrapped: 360 and above render as 359.
func (c HSL) Clamped() HSL {
	c.Hue = clamp(c.Hue, 0, 359)
	c.Saturation = clamp(c.Saturation, 0, 100)
	c.Lightness = clamp(c.Lightness, 0, 100)
	c.Alpha = clamp(c.Alpha, 0, 100)
	return c
}

// String renders the clamped color as "h,s%,l%" or "h,s%,l%,a" for use
// inside hsl()/hsla(), e.g. hsla(var(--primary)).
func (c HSL) String() string {
	c = c.Clamped()
	s := fmt.Sprintf("%d,%d%%,%d%%", c.Hue, c.Saturation, c.Lightness)
	if c.HasAlpha {
		s += "," + strconv.FormatFloat(float64(c.Alpha)/100, 'f', -1, 64)
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
