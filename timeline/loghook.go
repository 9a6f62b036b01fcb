package timeline

import (
	log "github.com/sirupsen/logrus"
)

// LogHook logs block boundaries at debug level and animation boundaries at
// trace level
type LogHook struct {
	entry *log.Entry
}

// NewLogHook creates a hook that logs through logger. A nil logger uses the
// standard logrus logger.
func NewLogHook(logger *log.Logger) *LogHook {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogHook{entry: log.NewEntry(logger).WithField("domain", "timeline")}
}

// Func logs the hook site
func (h *LogHook) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosBlockStart, HookPosBlockEnd:
		b, ok := ctx.Item.(*Block)
		if !ok {
			return
		}
		h.entry.WithFields(log.Fields{
			"block":    b.Name(),
			"at":       float64(ctx.Now),
			"duration": float64(b.Duration()),
		}).Debug(ctx.Pos.Name)
	case HookPosAnimStart, HookPosAnimEnd:
		e, ok := ctx.Item.(*Placement)
		if !ok {
			return
		}
		h.entry.WithFields(log.Fields{
			"anim": e.Anim.Name(),
			"at":   float64(ctx.Now),
		}).Trace(ctx.Pos.Name)
	}
}
