package trace

import (
	"github.com/afroash/rdma-viz/timeline"
)

// Recorder is a timeline hook that turns block and animation boundaries into
// tasks. Animations are children of their block.
type Recorder struct {
	where  string
	writer TraceWriter
	open   map[string]Task
}

// NewRecorder creates a recorder that labels its tasks with where
func NewRecorder(where string, writer TraceWriter) *Recorder {
	return &Recorder{
		where:  where,
		writer: writer,
		open:   make(map[string]Task),
	}
}

// Func records the hook site
func (r *Recorder) Func(ctx timeline.HookCtx) {
	switch ctx.Pos {
	case timeline.HookPosBlockStart:
		b := ctx.Item.(*timeline.Block)
		r.start(Task{ID: b.ID(), Kind: KindBlock, What: b.Name()}, ctx.Now)
	case timeline.HookPosAnimStart:
		e := ctx.Item.(*timeline.Placement)
		b := ctx.Detail.(*timeline.Block)
		r.start(Task{
			ID:       e.Anim.ID(),
			ParentID: b.ID(),
			Kind:     KindAnimation,
			What:     e.Anim.Name(),
		}, ctx.Now)
	case timeline.HookPosAnimEnd:
		r.end(ctx.Item.(*timeline.Placement).Anim.ID(), ctx.Now)
	case timeline.HookPosBlockEnd:
		r.end(ctx.Item.(*timeline.Block).ID(), ctx.Now)
	}
}

func (r *Recorder) start(task Task, now timeline.VTimeInSec) {
	task.Where = r.where
	task.StartTime = now
	r.open[task.ID] = task
}

func (r *Recorder) end(id string, now timeline.VTimeInSec) {
	task, ok := r.open[id]
	if !ok {
		return
	}
	delete(r.open, id)

	task.EndTime = now
	r.writer.Write(task)
}
