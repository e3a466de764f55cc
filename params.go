package fractal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ErrParams is returned for malformed parameter input.
var ErrParams = errors.New("invalid parameters")

// ParseParams reads a parameter set:
//
//	isJulia xMin xMax yMin yMax resolution iterations [cRe cIm]
//
// Tokens are separated by any whitespace. The Julia constant is present
// only when isJulia is 1.
func ParseParams(r io.Reader) (Params, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func(name string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("reading %s: %w", name, err)
			}
			return "", fmt.Errorf("%w: missing %s", ErrParams, name)
		}
		return sc.Text(), nil
	}
	float := func(name string) (float64, error) {
		tok, err := next(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q", ErrParams, name, tok)
		}
		return v, nil
	}
	integer := func(name string) (int, error) {
		tok, err := next(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q", ErrParams, name, tok)
		}
		return v, nil
	}

	var p Params
	kind, err := integer("isJulia")
	if err != nil {
		return Params{}, err
	}
	switch kind {
	case 0:
	case 1:
		p.IsJulia = true
	default:
		return Params{}, fmt.Errorf("%w: isJulia must be 0 or 1, got %d", ErrParams, kind)
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"xMin", &p.Region.Xmin},
		{"xMax", &p.Region.Xmax},
		{"yMin", &p.Region.Ymin},
		{"yMax", &p.Region.Ymax},
		{"resolution", &p.Resolution},
	}
	for _, f := range fields {
		if *f.dst, err = float(f.name); err != nil {
			return Params{}, err
		}
	}
	if p.Iterations, err = integer("iterations"); err != nil {
		return Params{}, err
	}
	if p.IsJulia {
		if p.C.Re, err = float("juliaRe"); err != nil {
			return Params{}, err
		}
		if p.C.Im, err = float("juliaIm"); err != nil {
			return Params{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks that p describes a finite, non-negative grid whose
// dimensions fit in an int.
func (p Params) Validate() error {
	r := p.Region
	switch {
	case !finite(r.Xmin, r.Xmax, r.Ymin, r.Ymax):
		return fmt.Errorf("%w: region bounds must be finite, got %+v", ErrParams, r)
	case !finite(p.Resolution) || !(p.Resolution > 0):
		return fmt.Errorf("%w: resolution must be positive, got %v", ErrParams, p.Resolution)
	case p.IsJulia && !finite(p.C.Re, p.C.Im):
		return fmt.Errorf("%w: julia constant must be finite, got %+v", ErrParams, p.C)
	case p.Iterations < 0:
		return fmt.Errorf("%w: negative iteration cap %d", ErrParams, p.Iterations)
	case r.Xmax < r.Xmin:
		return fmt.Errorf("%w: xMax %v below xMin %v", ErrParams, r.Xmax, r.Xmin)
	case r.Ymax < r.Ymin:
		return fmt.Errorf("%w: yMax %v below yMin %v", ErrParams, r.Ymax, r.Ymin)
	}

	w := (r.Xmax - r.Xmin) / p.Resolution
	h := (r.Ymax - r.Ymin) / p.Resolution
	if !(w < math.MaxInt) || !(h < math.MaxInt) {
		return fmt.Errorf("%w: %g x %g samples do not fit a grid", ErrParams, w, h)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Format renders p in the parameter file syntax.
func (p Params) Format() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	kind := "0"
	if p.IsJulia {
		kind = "1"
	}
	s := kind + "\n" +
		f(p.Region.Xmin) + " " + f(p.Region.Xmax) + " " + f(p.Region.Ymin) + " " + f(p.Region.Ymax) + "\n" +
		f(p.Resolution) + "\n" +
		strconv.Itoa(p.Iterations) + "\n"
	if p.IsJulia {
		s += f(p.C.Re) + " " + f(p.C.Im) + "\n"
	}
	return s
}
