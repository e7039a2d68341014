package wave

// StripIndices tessellates g as one triangle strip per pair of adjacent rows:
// for row pair j every column contributes (j+1)*Nx+i then j*Nx+i.
func StripIndices(g Grid) []uint32 {
	indices := make([]uint32, 0, (g.PointsY-1)*g.PointsX*2)
	for j := 0; j < g.PointsY-1; j++ {
		for i := 0; i < g.PointsX; i++ {
			indices = append(indices, uint32(g.Index(i, j+1)), uint32(g.Index(i, j)))
		}
	}
	return indices
}

// DrawIssuer issues one indexed strip draw of count indices starting at
// offset indices into the bound index buffer.
type DrawIssuer interface {
	DrawElements(count, offset int)
}

// DrawRows issues one draw per row pair of g.
func DrawRows(d DrawIssuer, g Grid) {
	perRow := g.PointsX * 2
	for row := 0; row < g.PointsY-1; row++ {
		d.DrawElements(perRow, row*perRow)
	}
}
