package scene

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/afroash/rdma-viz/geom"
)

func bePoint(x, y float64) OmegaMatcher {
	return And(
		HaveField("X", BeNumerically("~", x, 1e-9)),
		HaveField("Y", BeNumerically("~", y, 1e-9)),
	)
}

var _ = Describe("Shape", func() {
	It("should report edges of a rectangle", func() {
		r := NewRect(geom.Pt(1, 1), 2, 1)
		Expect(r.Edge(geom.Right)).To(bePoint(2, 1))
		Expect(r.Edge(geom.Left)).To(bePoint(0, 1))
		Expect(r.Edge(geom.Up)).To(bePoint(1, 1.5))
		Expect(r.Edge(geom.Down)).To(bePoint(1, 0.5))
	})

	It("should place a box next to a shape", func() {
		r := NewSquare(geom.Origin, 0.4)
		Expect(r.NextTo(geom.Down, 1, 0.2, 0.1)).To(bePoint(0, -0.4))
		Expect(r.NextTo(geom.Right, 1, 0.2, 0.1)).To(bePoint(0.8, 0))
	})

	It("should translate line geometry without aliasing", func() {
		l := NewLine(geom.Pt(0, 0), geom.Pt(1, 0))
		moved := l.Translated(geom.Pt(0, 2))
		Expect(moved.Points[1]).To(bePoint(1, 2))
		Expect(l.Points[1]).To(bePoint(1, 0))
	})

	It("should scale about a centre", func() {
		r := NewRect(geom.Pt(2, 0), 2, 2)
		half := r.Scaled(geom.Origin, 0.5)
		Expect(half.Center).To(bePoint(1, 0))
		Expect(half.Width).To(BeNumerically("~", 1, 1e-9))
	})

	It("should estimate text extent from the longest line", func() {
		txt := NewText("ab\nabcd", geom.Origin, 0.5)
		Expect(txt.Height).To(BeNumerically("~", 1.0, 1e-9))
		Expect(txt.Width).To(BeNumerically("~", 4*0.5*glyphAspect, 1e-9))
		Expect(txt.Lines()).To(Equal([]string{"ab", "abcd"}))
	})
})

var _ = Describe("Graph", func() {
	It("should only snapshot visible shapes, ordered by z", func() {
		g := NewGraph()
		back := NewRect(geom.Origin, 1, 1)
		front := NewDot(geom.Origin, 0.1, BlueC)
		front.Z = 10
		hidden := NewLine(geom.Origin, geom.Pt(1, 1))
		g.Add(front, back, hidden)
		front.Visible = true
		back.Visible = true

		f := g.Snapshot(1.5)
		Expect(f.Time).To(Equal(1.5))
		Expect(f.Shapes).To(HaveLen(2))
		Expect(f.Shapes[0].ID).To(Equal(back.ID))
		Expect(f.Shapes[1].ID).To(Equal(front.ID))
		Expect(g.Len()).To(Equal(3))
	})

	It("should copy shapes into the snapshot", func() {
		g := NewGraph()
		l := NewPolyline(geom.Polyline{geom.Origin, geom.Pt(1, 0)})
		l.Visible = true
		g.Add(l)

		f := g.Snapshot(0)
		l.Translate(geom.Pt(5, 5))
		Expect(f.Shapes[0].Points[0]).To(bePoint(0, 0))
	})

	It("should move a group by its anchor", func() {
		dot := NewDot(geom.Origin, 0.1, BlueC)
		lbl := NewText("1", geom.Pt(0, 0.3), 0.2)
		g := Group{dot, lbl}

		g.MoveTo(geom.Pt(2, 1))
		Expect(dot.Center).To(bePoint(2, 1))
		Expect(lbl.Center).To(bePoint(2, 1.3))
	})
})

var _ = Describe("Cell", func() {
	It("should recompute views on every set", func() {
		c := NewCell(60)
		seen := []float64{}
		c.Observe(func(v float64) { seen = append(seen, v) })

		c.Set(70)
		c.Set(95)
		Expect(seen).To(Equal([]float64{60, 70, 95}))
		Expect(c.Get()).To(Equal(95.0))
	})
})

var _ = Describe("Animations", func() {
	It("should fade in with a shift", func() {
		r := NewRect(geom.Origin, 1, 1)
		tw := FadeIn([]*Shape{r}, geom.Down, 1)

		tw.Begin()
		tw.Interpolate(0)
		Expect(r.Visible).To(BeTrue())
		Expect(r.Opacity).To(BeNumerically("~", 0, 1e-9))
		Expect(r.Center).To(bePoint(0, 1))

		tw.Finish()
		Expect(r.Opacity).To(BeNumerically("~", 1, 1e-9))
		Expect(r.Center).To(bePoint(0, 0))
	})

	It("should hide shapes at the end of a fade out", func() {
		r := NewRect(geom.Origin, 1, 1)
		r.Visible = true
		tw := FadeOut([]*Shape{r}, geom.Origin, 1)
		tw.Begin()
		tw.Finish()
		Expect(r.Visible).To(BeFalse())
	})

	It("should move along a path at constant speed", func() {
		dot := NewDot(geom.Origin, 0.1, BlueC)
		path := geom.Polyline{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2)}
		tw := MoveAlongPath(Group{dot}, path, 4)

		tw.Begin()
		tw.Interpolate(0.25)
		Expect(dot.Center).To(bePoint(1, 0))
		tw.Interpolate(0.75)
		Expect(dot.Center).To(bePoint(2, 1))
		tw.Finish()
		Expect(dot.Center).To(bePoint(2, 2))
	})

	It("should move to a target regardless of the start", func() {
		dot := NewDot(geom.Pt(-3, 4), 0.1, BlueC)
		tw := MoveTo(Group{dot}, geom.Pt(1, 1), 1)
		tw.Begin()
		tw.Interpolate(0.5)
		Expect(dot.Center).To(bePoint(-1, 2.5))
		tw.Finish()
		Expect(dot.Center).To(bePoint(1, 1))
	})

	It("should sweep a flash window along a trail", func() {
		trail := NewPolyline(geom.Polyline{geom.Origin, geom.Pt(1, 0)})
		tw := PassingFlash(trail, 1)

		tw.Begin()
		tw.Interpolate(0.4)
		Expect(trail.Visible).To(BeTrue())
		Expect(trail.DrawTo).To(BeNumerically("~", 0.5, 1e-9))
		Expect(trail.DrawFrom).To(BeNumerically("~", 0.25, 1e-9))

		tw.Finish()
		Expect(trail.Visible).To(BeFalse())
	})

	It("should grow from the centre", func() {
		r := NewRect(geom.Pt(1, 1), 2, 2)
		tw := GrowFromCenter([]*Shape{r}, 1)
		tw.Begin()
		tw.Interpolate(0)
		Expect(r.Width).To(BeNumerically("~", 0, 1e-9))
		tw.Finish()
		Expect(r.Width).To(BeNumerically("~", 2, 1e-9))
		Expect(r.Center).To(bePoint(1, 1))
	})

	It("should tween a cell from its current value", func() {
		c := NewCell(60)
		tw := CellTween(c, 95, 2, nil)
		tw.Begin()
		tw.Interpolate(0)
		Expect(c.Get()).To(BeNumerically("~", 60, 1e-9))
		tw.Finish()
		Expect(c.Get()).To(BeNumerically("~", 95, 1e-9))
	})

	It("should zoom and pan the camera", func() {
		cam := &Camera{Zoom: 1}
		tw := CameraMove(cam, geom.Pt(0.5, 0), 1.06, 1)
		tw.Begin()
		tw.Finish()
		Expect(cam.Zoom).To(BeNumerically("~", 1.06, 1e-9))
		Expect(cam.Center).To(bePoint(0.5, 0))
	})
})

var _ = Describe("Viewport", func() {
	It("should map the frame to pixels", func() {
		v := Viewport{Width: 1280, Height: 720, Camera: Camera{Zoom: 1}}
		x, y := v.ToPixel(geom.Origin)
		Expect(x).To(BeNumerically("~", 640, 1e-9))
		Expect(y).To(BeNumerically("~", 360, 1e-9))

		x, y = v.ToPixel(geom.Pt(geom.FrameWidth/2, geom.FrameHeight/2))
		Expect(x).To(BeNumerically("~", 1280, 1e-6))
		Expect(y).To(BeNumerically("~", 0, 1e-6))
		Expect(v.StrokeWidth(2)).To(BeNumerically("~", 2, 1e-9))
	})
})
