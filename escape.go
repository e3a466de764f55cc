package fractal

// Escape iterates z = z*z + c starting at z0 and returns the number of steps
// taken before |z|^2 reaches 4 or the iteration cap is hit.
func Escape(z0, c Complex, iterations int) int {
	z := z0
	step := 0
	for step < iterations && z.Re*z.Re+z.Im*z.Im < 4.0 {
		// both parts of the next z come from the previous one
		zr, zi := z.Re, z.Im
		z.Re = zr*zr - zi*zi + c.Re
		z.Im = 2*zr*zi + c.Im
		step++
	}
	return step
}

// Value reduces an iteration count to the grid cell value.
func Value(steps int) uint8 {
	return uint8(steps % 256)
}
