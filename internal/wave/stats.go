package wave

import (
	"hash/fnv"
	"math"
)

// FieldStats summarizes the heights of one buffer.
type FieldStats struct {
	Energy      float64 // sum of squared heights
	MaxAbs      float32
	MaxAbsEdge  float32
	MaxAbsInner float32
	Checksum    uint64 // FNV-1a over the raw height bits
	NaN         bool
}

// Stats computes FieldStats for an interleaved buffer laid out on g.
func Stats(g Grid, buf []float32) FieldStats {
	var st FieldStats
	h := fnv.New64a()
	var word [4]byte
	for j := 0; j < g.PointsY; j++ {
		for i := 0; i < g.PointsX; i++ {
			v := HeightAt(buf, g.Index(i, j))
			if v != v {
				st.NaN = true
			}
			bits := math.Float32bits(v)
			word[0], word[1], word[2], word[3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
			h.Write(word[:])

			st.Energy += float64(v) * float64(v)
			a := float32(math.Abs(float64(v)))
			if a > st.MaxAbs {
				st.MaxAbs = a
			}
			if g.OnEdge(i, j) {
				if a > st.MaxAbsEdge {
					st.MaxAbsEdge = a
				}
			} else if a > st.MaxAbsInner {
				st.MaxAbsInner = a
			}
		}
	}
	st.Checksum = h.Sum64()
	return st
}
