package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"wavesurface/internal/glwave"
	"wavesurface/internal/wave"
)

// shadeSurface writes one RGBA pixel per grid sample into pixels, lighting
// each sample with its normal seen from eye. Row j of the grid is image row
// j.
func shadeSurface(g wave.Grid, buf []float32, pixels []byte, eye mgl32.Vec3) {
	for idx := 0; idx < g.Len(); idx++ {
		s := wave.SampleAt(buf, idx)
		normal := mgl32.Vec3{s.NX, s.NY, s.NZ}
		if normal.Len() == 0 {
			normal = mgl32.Vec3{0, 1, 0}
		}
		c := glwave.Shade(glwave.DefaultLight, glwave.Water, mgl32.Vec3{s.X, s.Height, s.Z}, normal, eye)
		base := idx * 4
		pixels[base] = byte(c[0]*255 + 0.5)
		pixels[base+1] = byte(c[1]*255 + 0.5)
		pixels[base+2] = byte(c[2]*255 + 0.5)
		pixels[base+3] = 255
	}
}
