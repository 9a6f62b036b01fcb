package timeline

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Now    VTimeInSec
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

var (
	// HookPosBeforeEvent triggers before the engine handles an event
	HookPosBeforeEvent = &HookPos{Name: "BeforeEvent"}
	// HookPosAfterEvent triggers after the engine handles an event
	HookPosAfterEvent = &HookPos{Name: "AfterEvent"}

	// HookPosBlockStart triggers when a block starts. Item is the *Block.
	HookPosBlockStart = &HookPos{Name: "BlockStart"}
	// HookPosBlockEnd triggers when a block passes its barrier.
	HookPosBlockEnd = &HookPos{Name: "BlockEnd"}
	// HookPosAnimStart triggers when an animation leaves its start offset.
	// Item is the *Placement and Detail the owning *Block.
	HookPosAnimStart = &HookPos{Name: "AnimStart"}
	// HookPosAnimEnd triggers when an animation reaches its final state.
	HookPosAnimEnd = &HookPos{Name: "AnimEnd"}
)

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface
type HookFunc func(ctx HookCtx)

// Func calls f(ctx)
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
