package wave

// Interleaved sample layout shared by every device and by the vertex input of
// the render pass: 3 floats position, 3 floats normal, 2 floats texcoord.
// Positions are y-up, so the height lives in the position's Y component.
const (
	SampleStride = 8

	OffsetPosition = 0
	OffsetHeight   = OffsetPosition + 1
	OffsetNormal   = 3
	OffsetTexCoord = 6

	// SampleBytes is the vertex stride in bytes.
	SampleBytes = SampleStride * 4
)

// Sample is the decoded form of one grid sample.
type Sample struct {
	X, Height, Z float32
	NX, NY, NZ   float32
	U, V         float32
}

// SampleAt decodes sample idx from an interleaved buffer.
func SampleAt(buf []float32, idx int) Sample {
	b := buf[idx*SampleStride : idx*SampleStride+SampleStride]
	return Sample{
		X: b[0], Height: b[1], Z: b[2],
		NX: b[3], NY: b[4], NZ: b[5],
		U: b[6], V: b[7],
	}
}

// HeightAt returns the height of sample idx.
func HeightAt(buf []float32, idx int) float32 {
	return buf[idx*SampleStride+OffsetHeight]
}

// SetHeight overwrites the height of sample idx.
func SetHeight(buf []float32, idx int, h float32) {
	buf[idx*SampleStride+OffsetHeight] = h
}

// Heights extracts the height of every sample into dst, growing it if needed.
func Heights(dst []float32, buf []float32) []float32 {
	n := len(buf) / SampleStride
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = buf[i*SampleStride+OffsetHeight]
	}
	return dst
}

// FlatLayout builds a buffer for g with every sample at height zero, positions
// laid out on the XZ plane, texcoords spanning [0,1] and zero normals.
func FlatLayout(g Grid) []float32 {
	dx, dy := g.Spacing()
	ds := 1 / float32(g.PointsX-1)
	dt := 1 / float32(g.PointsY-1)
	buf := make([]float32, g.Floats())
	for j := 0; j < g.PointsY; j++ {
		for i := 0; i < g.PointsX; i++ {
			b := buf[g.Index(i, j)*SampleStride:]
			b[OffsetPosition] = float32(i) * dx
			b[OffsetPosition+2] = float32(j) * dy
			b[OffsetTexCoord] = float32(i) * ds
			b[OffsetTexCoord+1] = float32(j) * dt
		}
	}
	return buf
}
