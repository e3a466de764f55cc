package fractal

// ParamSource provides the parameters of one pass.
type ParamSource interface {
	ReadParams() (Params, error)
}

// RasterSink receives the finished grid of one pass.
type RasterSink interface {
	WriteRaster(p Params, g *Grid) error
}

// Allocator provides grid memory.
// The index holds one entry per row; rows are handed out in segments.
// FreeRows may receive rows of several segments at once.
type Allocator interface {
	AllocIndex(height int) ([][]uint8, error)
	FreeIndex(index [][]uint8)
	AllocRows(count, width int) ([][]uint8, error)
	FreeRows(rows [][]uint8)
}

// Pass pairs a parameter source with the sink of its raster.
type Pass struct {
	Name   string
	Source ParamSource
	Sink   RasterSink
}
