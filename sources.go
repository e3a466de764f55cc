package fractal

import (
	"fmt"
	"os"
	"strings"
)

// FileSource reads parameters from a file.
type FileSource string

func (f FileSource) ReadParams() (Params, error) {
	file, err := os.Open(string(f))
	if err != nil {
		return Params{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	p, err := ParseParams(file)
	if err != nil {
		return Params{}, fmt.Errorf("%s: %w", f, err)
	}
	return p, nil
}

// FileSink writes the raster to a file, replacing it.
type FileSink string

func (f FileSink) WriteRaster(_ Params, g *Grid) error {
	file, err := os.Create(string(f))
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := WritePGM(file, g); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", f, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f, err)
	}
	return nil
}

// TextSource parses parameters held in memory.
type TextSource string

func (t TextSource) ReadParams() (Params, error) {
	return ParseParams(strings.NewReader(string(t)))
}
