package fractal

import (
	"bufio"
	"io"
	"strconv"
)

// WritePGM writes g as a plain (P2) graymap with maxval 255.
// Every value is followed by a space and every row by a newline.
func WritePGM(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)

	_, _ = bw.WriteString("P2\n")
	_, _ = bw.WriteString(strconv.Itoa(g.Width))
	_, _ = bw.WriteString(" ")
	_, _ = bw.WriteString(strconv.Itoa(g.Height))
	_, _ = bw.WriteString("\n255\n")

	var num []byte
	for y := 0; y < g.Height; y++ {
		for _, v := range g.Row(y) {
			num = strconv.AppendUint(num[:0], uint64(v), 10)
			num = append(num, ' ')
			_, _ = bw.Write(num)
		}
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}
