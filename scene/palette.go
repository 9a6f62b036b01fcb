package scene

import "image/color"

// Palette used for markers, links and annotations
var (
	Background = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	White      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	BlueC      = color.NRGBA{R: 88, G: 196, B: 221, A: 255}
	GoldE      = color.NRGBA{R: 199, G: 141, B: 70, A: 255}
	GreenC     = color.NRGBA{R: 131, G: 193, B: 103, A: 255}
	Pink       = color.NRGBA{R: 209, G: 71, B: 189, A: 255}
	PurpleB    = color.NRGBA{R: 154, G: 114, B: 172, A: 255}
	TealC      = color.NRGBA{R: 92, G: 208, B: 179, A: 255}
	Yellow     = color.NRGBA{R: 247, G: 217, B: 111, A: 255}
	GreyA      = color.NRGBA{R: 221, G: 221, B: 221, A: 255}
	GreyB      = color.NRGBA{R: 187, G: 187, B: 187, A: 255}
	GreyE      = color.NRGBA{R: 34, G: 34, B: 34, A: 255}
)

// MarkerColors are cycled over packet markers
var MarkerColors = []color.NRGBA{BlueC, GoldE, GreenC, Pink, PurpleB, TealC}

// WithAlpha returns c with its alpha scaled by opacity in [0, 1]
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity <= 0 {
		c.A = 0
		return c
	}
	if opacity >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}
