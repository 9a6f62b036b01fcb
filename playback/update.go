package playback

import "github.com/afroash/rdma-viz/scene"

// FrameUpdate is sent from the player to the UI for every tick
type FrameUpdate struct {
	Frame scene.Frame

	// Meter is the effective bandwidth value at this frame. It is zero until
	// MeterLive is set.
	Meter float64

	// MeterLive is set once the scene has started animating its meter
	MeterLive bool

	// Progress is the played fraction of the timeline in [0, 1]
	Progress float64

	// Done is set on the last update of a run
	Done bool
}
