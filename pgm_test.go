package fractal

import (
	"bytes"
	"testing"
)

func TestWritePGM(t *testing.T) {
	a := &HeapAllocator{}
	g, err := allocGrid(a, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.allocRows(a, Range{0, 2}); err != nil {
		t.Fatal(err)
	}
	for i, v := range []uint8{0, 7, 255, 100, 1, 42} {
		g.set(i%3, i/3, v)
	}

	var buf bytes.Buffer
	if err := WritePGM(&buf, g); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	want := "P2\n3 2\n255\n0 7 255 \n100 1 42 \n"
	if buf.String() != want {
		t.Errorf("WritePGM wrote %q, want %q", buf.String(), want)
	}
}

func TestWritePGMEmpty(t *testing.T) {
	a := &HeapAllocator{}
	g, err := allocGrid(a, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePGM(&buf, g); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	if got := buf.String(); got != "P2\n0 0\n255\n" {
		t.Errorf("WritePGM wrote %q", got)
	}
}
