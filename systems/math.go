package systems

// modInt returns the non-negative remainder of a/b (Go's % keeps the sign of a).
func modInt(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
