package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/afroash/rdma-viz/scene"
)

// textPainter draws text with the fixed 7x13 face and scales the glyph
// bitmap to the requested line height.
type textPainter struct {
	face   *basicfont.Face
	scaler draw.Scaler
}

func newTextPainter() *textPainter {
	return &textPainter{
		face:   basicfont.Face7x13,
		scaler: draw.BiLinear,
	}
}

func (p *textPainter) draw(dst *image.RGBA, vp scene.Viewport, s scene.Shape, c color.NRGBA) {
	if c.A == 0 || s.Text == "" {
		return
	}
	lineHeight := vp.Length(s.TextSize)
	if lineHeight < 1 {
		return
	}

	lines := s.Lines()
	cx, cy := vp.ToPixel(s.Center)
	top := cy - lineHeight*float64(len(lines))/2

	for i, line := range lines {
		glyphs := p.glyphs(line, c, s.Bold)
		if glyphs == nil {
			continue
		}
		scale := lineHeight / float64(p.face.Height)
		w := float64(glyphs.Bounds().Dx()) * scale
		y := top + float64(i)*lineHeight
		target := image.Rect(
			int(cx-w/2+0.5), int(y+0.5),
			int(cx+w/2+0.5), int(y+lineHeight+0.5),
		)
		p.scaler.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)
	}
}

// glyphs renders one line at the face's native size
func (p *textPainter) glyphs(line string, c color.NRGBA, bold bool) *image.RGBA {
	adv := font.MeasureString(p.face, line).Ceil()
	if adv == 0 {
		return nil
	}
	if bold {
		adv++
	}
	img := image.NewRGBA(image.Rect(0, 0, adv, p.face.Height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: p.face,
		Dot:  fixed.P(0, p.face.Ascent),
	}
	d.DrawString(line)
	if bold {
		d.Dot = fixed.P(1, p.face.Ascent)
		d.DrawString(line)
	}
	return img
}
