package fractal

import "math"

// Region within the complex plane
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Complex is a point of the complex plane.
type Complex struct {
	Re, Im float64
}

// Params describes one fractal pass.
// C is only meaningful when IsJulia is set.
type Params struct {
	IsJulia    bool
	Region     Region
	Resolution float64
	Iterations int
	C          Complex
}

// Kind returns "julia" or "mandelbrot".
func (p Params) Kind() string {
	if p.IsJulia {
		return "julia"
	}
	return "mandelbrot"
}

// Dimensions returns the grid size sampled by p.
func (p Params) Dimensions() (width, height int) {
	width = int(math.Floor((p.Region.Xmax - p.Region.Xmin) / p.Resolution))
	height = int(math.Floor((p.Region.Ymax - p.Region.Ymin) / p.Resolution))
	return width, height
}

// Point maps the sample (w, h) onto the plane.
func (p Params) Point(w, h int) Complex {
	return Complex{
		Re: float64(w)*p.Resolution + p.Region.Xmin,
		Im: float64(h)*p.Resolution + p.Region.Ymin,
	}
}

// Sample evaluates the pass at (w, h) and returns the stored grid value.
func (p Params) Sample(w, h int) uint8 {
	pt := p.Point(w, h)
	var steps int
	if p.IsJulia {
		steps = Escape(pt, p.C, p.Iterations)
	} else {
		steps = Escape(Complex{}, pt, p.Iterations)
	}
	return Value(steps)
}
