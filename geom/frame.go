package geom

// FrameWidth and FrameHeight give the visible area in scene units (16:9)
const (
	FrameHeight = 8.0
	FrameWidth  = FrameHeight * 16 / 9
)
