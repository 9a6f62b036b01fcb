package timeline

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHandler struct {
	handled []VTimeInSec
	names   []string
	fail    error
	onEvent func(e Event)
}

type namedEvent struct {
	EventBase
	name string
}

func (h *recordingHandler) Handle(e Event) error {
	h.handled = append(h.handled, e.Time())
	if n, ok := e.(namedEvent); ok {
		h.names = append(h.names, n.name)
	}
	if h.onEvent != nil {
		h.onEvent(e)
	}
	return h.fail
}

func at(t VTimeInSec, h Handler, name string) namedEvent {
	return namedEvent{EventBase: NewEventBase(t, h), name: name}
}

var _ = Describe("EventQueue", func() {
	It("should pop events in time order", func() {
		q := NewEventQueue()
		h := &recordingHandler{}
		q.Push(at(3, h, "c"))
		q.Push(at(1, h, "a"))
		q.Push(at(2, h, "b"))

		Expect(q.Len()).To(Equal(3))
		Expect(q.Peek().Time()).To(Equal(VTimeInSec(1)))
		Expect(q.Pop().(namedEvent).name).To(Equal("a"))
		Expect(q.Pop().(namedEvent).name).To(Equal("b"))
		Expect(q.Pop().(namedEvent).name).To(Equal("c"))
	})

	It("should keep push order for same-time events", func() {
		q := NewEventQueue()
		h := &recordingHandler{}
		for _, n := range []string{"first", "second", "third", "fourth"} {
			q.Push(at(5, h, n))
		}

		names := []string{}
		for q.Len() > 0 {
			names = append(names, q.Pop().(namedEvent).name)
		}
		Expect(names).To(Equal([]string{"first", "second", "third", "fourth"}))
	})
})

var _ = Describe("SerialEngine", func() {
	var (
		engine  *SerialEngine
		handler *recordingHandler
	)

	BeforeEach(func() {
		engine = NewSerialEngine()
		handler = &recordingHandler{}
	})

	It("should run events in time order", func() {
		engine.Schedule(at(4, handler, "d"))
		engine.Schedule(at(2, handler, "b"))
		handler.onEvent = func(e Event) {
			if e.Time() == 2 {
				engine.Schedule(at(3, handler, "c"))
			}
		}

		Expect(engine.Run()).To(Succeed())
		Expect(handler.names).To(Equal([]string{"b", "c", "d"}))
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(4)))
	})

	It("should stop at the RunUntil bound", func() {
		engine.Schedule(at(1, handler, "a"))
		engine.Schedule(at(2, handler, "b"))
		engine.Schedule(at(3, handler, "c"))

		Expect(engine.RunUntil(2)).To(Succeed())
		Expect(handler.names).To(Equal([]string{"a", "b"}))
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(2)))
		Expect(engine.Pending()).To(Equal(1))

		Expect(engine.RunUntil(2.5)).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(2.5)))
		Expect(handler.names).To(HaveLen(2))
	})

	It("should return the handler error and stop", func() {
		handler.fail = errors.New("boom")
		engine.Schedule(at(1, handler, "a"))
		engine.Schedule(at(2, handler, "b"))

		Expect(engine.Run()).To(MatchError("boom"))
		Expect(handler.names).To(Equal([]string{"a"}))
	})

	It("should panic when scheduling in the past", func() {
		Expect(engine.RunUntil(5)).To(Succeed())
		Expect(func() { engine.Schedule(at(1, handler, "late")) }).To(Panic())
	})

	It("should invoke hooks around each event", func() {
		positions := []*HookPos{}
		engine.AcceptHook(HookFunc(func(ctx HookCtx) {
			positions = append(positions, ctx.Pos)
		}))
		engine.Schedule(at(1, handler, "a"))

		Expect(engine.Run()).To(Succeed())
		Expect(positions).To(Equal([]*HookPos{HookPosBeforeEvent, HookPosAfterEvent}))
	})
})

var _ = Describe("Easing", func() {
	It("should pin the smooth curve ends", func() {
		Expect(Smooth(0)).To(BeNumerically("~", 0, 1e-12))
		Expect(Smooth(1)).To(BeNumerically("~", 1, 1e-12))
		Expect(Smooth(0.5)).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("should keep smooth monotonically non-decreasing", func() {
		prev := Smooth(0)
		for i := 1; i <= 1000; i++ {
			v := Smooth(float64(i) / 1000)
			Expect(v).To(BeNumerically(">=", prev))
			prev = v
		}
	})

	It("should clamp out-of-range progress", func() {
		Expect(Linear(-0.5)).To(Equal(0.0))
		Expect(Linear(1.5)).To(Equal(1.0))
		Expect(Smooth(2)).To(BeNumerically("~", 1, 1e-12))
	})

	DescribeTable("should pin the ends of every curve",
		func(ease Easing) {
			Expect(ease(0)).To(BeNumerically("~", 0, 1e-12))
			Expect(ease(1)).To(BeNumerically("~", 1, 1e-12))
		},
		Entry("linear", Linear),
		Entry("smooth", Smooth, Label("smooth")),
	)

	It("should return there and back", func() {
		Expect(ThereAndBack(0)).To(BeNumerically("~", 0, 1e-12))
		Expect(ThereAndBack(0.5)).To(BeNumerically("~", 1, 1e-12))
		Expect(ThereAndBack(1)).To(BeNumerically("~", 0, 1e-12))
	})
})
