// Package trace records the spans of blocks and animations played by a
// timeline.
package trace

import "github.com/afroash/rdma-viz/timeline"

// A Task is one recorded span: a block, or an animation inside a block
type Task struct {
	ID        string              `json:"id"`
	ParentID  string              `json:"parent_id"`
	Kind      string              `json:"kind"`
	What      string              `json:"what"`
	Where     string              `json:"where"`
	StartTime timeline.VTimeInSec `json:"start_time"`
	EndTime   timeline.VTimeInSec `json:"end_time"`
}

// Task kinds
const (
	KindBlock     = "block"
	KindAnimation = "animation"
)

// A TraceWriter stores finished tasks
type TraceWriter interface {
	Init() error
	Write(task Task)
	Flush() error
}
