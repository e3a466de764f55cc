package fractal

import "testing"

func TestPartitionTiles(t *testing.T) {
	for n := 1; n <= 20; n++ {
		for total := 0; total <= 100; total++ {
			next := 0
			for id := 0; id < n; id++ {
				r := Partition(id, n, total)
				if r.Start < 0 || r.Start > r.End {
					t.Fatalf("Partition(%d, %d, %d) = %+v is not a valid range", id, n, total, r)
				}
				if r.Start != next {
					t.Fatalf("Partition(%d, %d, %d) starts at %d, want %d", id, n, total, r.Start, next)
				}
				next = r.End
			}
			if next != total {
				t.Fatalf("ranges for n=%d end at %d, want %d", n, next, total)
			}
		}
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		id, n, total int
		want         Range
	}{
		{0, 1, 10, Range{0, 10}},
		{0, 3, 10, Range{0, 3}},
		{1, 3, 10, Range{3, 6}},
		{2, 3, 10, Range{6, 10}},
		{0, 4, 2, Range{0, 0}},
		{1, 4, 2, Range{0, 1}},
		{3, 4, 2, Range{1, 2}},
		{16, 17, 4, Range{3, 4}},
	}
	for _, tt := range tests {
		if got := Partition(tt.id, tt.n, tt.total); got != tt.want {
			t.Errorf("Partition(%d, %d, %d) = %+v, want %+v", tt.id, tt.n, tt.total, got, tt.want)
		}
	}
}
