package timeline

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type sampler struct {
	values   []float64
	begun    int
	finished bool
	last     float64
}

func newSampler(name string, d VTimeInSec) (*Tween, *sampler) {
	p := &sampler{}
	tw := NewTween(name, d, Linear, func(alpha float64) {
		p.values = append(p.values, alpha)
		p.last = alpha
		if alpha == 1 {
			p.finished = true
		}
	}).OnBegin(func() { p.begun++ })
	return tw, p
}

var _ = Describe("Block", func() {
	It("should stagger lagged entries by ratio of the previous duration", func() {
		a, _ := newSampler("a", 1)
		b, _ := newSampler("b", 1)
		c, _ := newSampler("c", 2)

		entries := Lag(0.5, a, b, c)
		Expect(entries[0].Offset).To(BeNumerically("~", 0, 1e-12))
		Expect(entries[1].Offset).To(BeNumerically("~", 0.5, 1e-12))
		Expect(entries[2].Offset).To(BeNumerically("~", 1.0, 1e-12))
		Expect(NewBlock("lag", entries).Duration()).To(BeNumerically("~", 3.0, 1e-12))
	})

	It("should rescale entries to the run time", func() {
		a, _ := newSampler("a", 1)
		b, _ := newSampler("b", 1)
		block := NewBlock("lag", Lag(0.1, a, b)).WithRunTime(2.2)

		Expect(block.Duration()).To(BeNumerically("~", 2.2, 1e-12))
		Expect(block.Entries()[1].Offset).To(BeNumerically("~", 0.2, 1e-12))
		Expect(block.Entries()[1].Span).To(BeNumerically("~", 2.0, 1e-12))
	})

	It("should add hold time after the longest member", func() {
		durations := []VTimeInSec{4.0, 2.6, 3.0, 3.5, 2.8, 4.2}
		anims := []Animation{}
		for _, d := range durations {
			a, _ := newSampler("move", d)
			anims = append(anims, a)
		}

		block := Play("dispersal", anims...).WithHold(0.1)
		Expect(block.Duration()).To(BeNumerically("~", 4.3, 1e-9))
	})

	It("should let an empty wait block pass time", func() {
		Expect(Wait(0.6).Duration()).To(BeNumerically("~", 0.6, 1e-12))
		Expect(Wait(0.6).Entries()).To(BeEmpty())
	})
})

var _ = Describe("Timeline", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should start the next block only after the previous barrier", func() {
		first, p1 := newSampler("first", 2)
		second, p2 := newSampler("second", 1)
		tl := NewTimeline(engine, Play("one", first), Play("two", second))
		Expect(tl.Start()).To(Succeed())

		Expect(engine.RunUntil(1)).To(Succeed())
		tl.Sample(1)
		Expect(p1.last).To(BeNumerically("~", 0.5, 1e-12))
		Expect(p2.begun).To(Equal(0))

		Expect(engine.RunUntil(2)).To(Succeed())
		Expect(p1.finished).To(BeTrue())
		Expect(p2.begun).To(Equal(1))
		Expect(tl.Current().Name()).To(Equal("two"))

		Expect(engine.RunUntil(2.25)).To(Succeed())
		tl.Sample(2.25)
		Expect(p2.last).To(BeNumerically("~", 0.25, 1e-12))

		Expect(engine.Run()).To(Succeed())
		Expect(tl.Done()).To(BeTrue())
		Expect(engine.CurrentTime()).To(BeNumerically("~", 3, 1e-12))
		Expect(tl.Duration()).To(BeNumerically("~", 3, 1e-12))
	})

	It("should hold lagged entries at their start state", func() {
		a, pa := newSampler("a", 1)
		b, pb := newSampler("b", 1)
		tl := NewTimeline(engine, NewBlock("lag", Lag(0.5, a, b)))
		Expect(tl.Start()).To(Succeed())

		Expect(engine.RunUntil(0.25)).To(Succeed())
		tl.Sample(0.25)
		Expect(pa.last).To(BeNumerically("~", 0.25, 1e-12))
		Expect(pb.last).To(Equal(0.0))
		Expect(pb.begun).To(Equal(1))
	})

	It("should finish every member by the end of a held block", func() {
		durations := []VTimeInSec{4.0, 2.6, 3.0, 3.5, 2.8, 4.2}
		anims := []Animation{}
		samplers := []*sampler{}
		for _, d := range durations {
			a, p := newSampler("move", d)
			anims = append(anims, a)
			samplers = append(samplers, p)
		}
		tl := NewTimeline(engine, Play("dispersal", anims...).WithHold(0.1))
		Expect(tl.Start()).To(Succeed())

		Expect(engine.RunUntil(4.2)).To(Succeed())
		for _, p := range samplers {
			Expect(p.finished).To(BeTrue())
		}
		Expect(tl.Done()).To(BeFalse())

		Expect(engine.RunUntil(4.3)).To(Succeed())
		Expect(tl.Done()).To(BeTrue())
	})

	It("should invoke block and animation hooks in order", func() {
		a, _ := newSampler("a", 1)
		block := Play("one", a)
		tl := NewTimeline(engine, block)

		hook := NewMockHook(mockCtrl)
		isPos := func(pos *HookPos) gomock.Matcher {
			return gomock.Cond(func(x any) bool {
				return x.(HookCtx).Pos == pos
			})
		}
		gomock.InOrder(
			hook.EXPECT().Func(isPos(HookPosBlockStart)),
			hook.EXPECT().Func(isPos(HookPosAnimStart)),
			hook.EXPECT().Func(isPos(HookPosAnimEnd)),
			hook.EXPECT().Func(isPos(HookPosBlockEnd)),
		)
		tl.AcceptHook(hook)

		Expect(tl.Start()).To(Succeed())
		Expect(engine.Run()).To(Succeed())
	})

	It("should abort when a finish callback fails", func() {
		a, _ := newSampler("a", 1)
		b, pb := newSampler("b", 1)
		failure := errors.New("out of order")
		tl := NewTimeline(engine,
			Play("one", a).OnFinish(func() error { return failure }),
			Play("two", b),
		)

		Expect(tl.Start()).To(Succeed())
		err := engine.Run()
		Expect(errors.Is(err, failure)).To(BeTrue())
		Expect(pb.begun).To(Equal(0))
		Expect(tl.Done()).To(BeFalse())
	})

	It("should refuse to start twice", func() {
		tl := NewTimeline(engine, Wait(1))
		Expect(tl.Start()).To(Succeed())
		Expect(tl.Start()).To(MatchError(ErrAlreadyStarted))
	})

	It("should report the planned schedule", func() {
		tl := NewTimeline(engine, Wait(1), Wait(0.5), Wait(2))
		sched := tl.Schedule()
		Expect(sched).To(HaveLen(3))
		Expect(sched[1].Start).To(BeNumerically("~", 1, 1e-12))
		Expect(sched[2].End).To(BeNumerically("~", 3.5, 1e-12))
	})
})
