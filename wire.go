package fractal

// RenderRequest is the first message a render service client sends.
type RenderRequest struct {
	Threads int           `json:"threads"`
	Passes  []PassRequest `json:"passes"`
}

// PassRequest carries one parameter set in the parameter file syntax.
type PassRequest struct {
	Name   string `json:"name"`
	Params string `json:"params"`
}

// RasterHeader announces the raster sent in the following binary message.
type RasterHeader struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

// Raster is a rendered pass as returned by a Renderer.
type Raster struct {
	Name   string
	Width  int
	Height int
	PGM    []byte
}
