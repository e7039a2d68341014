package wave

import "github.com/go-gl/mathgl/mgl32"

// Reference kernels. Each invocation reads only its inputs and writes only its
// own sample, so tiles can run in any order or in parallel. The GPU kernels in
// clwave and glwave implement the same arithmetic.

// integrateTile advances the heights of every sample in t:
//
//	h' = damping * (2*h - h_prev + waveFactor * sum(h_n - h))
//
// over the 4 neighbours n of each sample, and carries position and texcoord
// over from current.
func integrateTile(p Params, target, current, previous []float32, t tile) {
	nx, ny := p.PointsX, p.PointsY
	wf, damp := p.WaveFactor, p.Damping
	fixed := p.Edge == EdgeFixed
	for j := t.y0; j < t.y1; j++ {
		row := j * nx
		up := clampCoord(j-1, 0, ny-1) * nx
		down := clampCoord(j+1, 0, ny-1) * nx
		edgeRow := j == 0 || j == ny-1
		for i := t.x0; i < t.x1; i++ {
			base := (row + i) * SampleStride
			target[base+OffsetPosition] = current[base+OffsetPosition]
			target[base+OffsetPosition+2] = current[base+OffsetPosition+2]
			target[base+OffsetTexCoord] = current[base+OffsetTexCoord]
			target[base+OffsetTexCoord+1] = current[base+OffsetTexCoord+1]

			c := current[base+OffsetHeight]
			if fixed && (edgeRow || i == 0 || i == nx-1) {
				target[base+OffsetHeight] = c
				continue
			}
			left := (row + clampCoord(i-1, 0, nx-1)) * SampleStride
			right := (row + clampCoord(i+1, 0, nx-1)) * SampleStride
			top := (up + i) * SampleStride
			bottom := (down + i) * SampleStride
			lap := current[left+OffsetHeight] + current[right+OffsetHeight] +
				current[top+OffsetHeight] + current[bottom+OffsetHeight] - 4*c
			target[base+OffsetHeight] = ((2*c - previous[base+OffsetHeight]) + wf*lap) * damp
		}
	}
}

// normalsTile writes the surface normal of every sample in t from central
// differences of the neighbouring heights in buf. Indices are clamped at the
// boundary, where the difference becomes one-sided.
func normalsTile(p Params, buf []float32, t tile) {
	nx, ny := p.PointsX, p.PointsY
	height := func(i, j int) float32 {
		return buf[(j*nx+i)*SampleStride+OffsetHeight]
	}
	for j := t.y0; j < t.y1; j++ {
		ja := clampCoord(j-1, 0, ny-1)
		jb := clampCoord(j+1, 0, ny-1)
		for i := t.x0; i < t.x1; i++ {
			il := clampCoord(i-1, 0, nx-1)
			ir := clampCoord(i+1, 0, nx-1)
			tx := mgl32.Vec3{float32(ir-il) * p.DX, height(ir, j) - height(il, j), 0}
			tz := mgl32.Vec3{0, height(i, jb) - height(i, ja), float32(jb-ja) * p.DY}
			n := tz.Cross(tx).Normalize()
			base := (j*nx + i) * SampleStride
			buf[base+OffsetNormal] = n[0]
			buf[base+OffsetNormal+1] = n[1]
			buf[base+OffsetNormal+2] = n[2]
		}
	}
}

// Integrate runs the integrator over the whole grid on the calling goroutine.
func Integrate(p Params, target, current, previous []float32) {
	integrateTile(p, target, current, previous, tile{x1: p.PointsX, y1: p.PointsY})
}

// EstimateNormals runs the normal estimator over the whole grid on the
// calling goroutine.
func EstimateNormals(p Params, buf []float32) {
	normalsTile(p, buf, tile{x1: p.PointsX, y1: p.PointsY})
}
