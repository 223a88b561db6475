package mesh

// Edge is an undirected mesh edge with A < B.
type Edge struct{ A, B int }

func makeEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// EdgeUse counts how many faces use each undirected edge.
func EdgeUse(m *Mesh) map[Edge]int {
	use := make(map[Edge]int, len(m.faces)*3/2)
	for _, f := range m.faces {
		use[makeEdge(f[0], f[1])]++
		use[makeEdge(f[1], f[2])]++
		use[makeEdge(f[2], f[0])]++
	}
	return use
}

// IsWatertight reports whether every edge is shared by exactly two faces
// and each such pair traverses the edge in opposite directions.
func IsWatertight(m *Mesh) bool {
	directed := make(map[[2]int]int, len(m.faces)*3)
	for _, f := range m.faces {
		for k := 0; k < 3; k++ {
			directed[[2]int{f[k], f[(k+1)%3]}]++
		}
	}
	for e, n := range directed {
		if n != 1 || directed[[2]int{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

// Volume returns the signed volume enclosed by m. It is positive when
// faces wind counter-clockwise seen from outside.
func Volume(m *Mesh) float64 {
	var sum float64
	for _, f := range m.faces {
		a, b, c := m.Triangle(f)
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6
}
