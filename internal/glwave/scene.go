package glwave

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"wavesurface/internal/wave"
)

// Light is a point light with separate ambient, diffuse and specular colours.
type Light struct {
	Position                   mgl32.Vec3
	Ambient, Diffuse, Specular mgl32.Vec3
}

// Material is the surface response to a Light.
type Material struct {
	Ambient, Diffuse, Specular mgl32.Vec3
	Shininess                  float32
}

// DefaultLight sits high above the surface with a neutral 0.9 colour.
var DefaultLight = Light{
	Position: mgl32.Vec3{50, 150, 50},
	Ambient:  mgl32.Vec3{0.9, 0.9, 0.9},
	Diffuse:  mgl32.Vec3{0.9, 0.9, 0.9},
	Specular: mgl32.Vec3{0.9, 0.9, 0.9},
}

// Water is the surface material.
var Water = Material{
	Ambient:   mgl32.Vec3{0, 0.08, 0.14},
	Diffuse:   mgl32.Vec3{0, 0.47, 0.75},
	Specular:  mgl32.Vec3{0.6, 0.6, 0.6},
	Shininess: 48,
}

// Camera returns the eye and look-at point framing g: the eye sits off the
// far corner, looking at the grid centre.
func Camera(g wave.Grid) (eye, center mgl32.Vec3) {
	center = mgl32.Vec3{g.SizeX / 2, 0, g.SizeY / 2}
	span := g.SizeX
	if g.SizeY > span {
		span = g.SizeY
	}
	eye = center.Add(mgl32.Vec3{span * 1.3, span * 0.6, span * 1.3})
	return eye, center
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Shade evaluates the Blinn-Phong model at pos with the given normal, the same
// arithmetic as surface.frag, clamped to [0,1].
func Shade(l Light, m Material, pos, normal, eye mgl32.Vec3) mgl32.Vec3 {
	n := normal.Normalize()
	toLight := l.Position.Sub(pos).Normalize()
	toEye := eye.Sub(pos).Normalize()
	half := toLight.Add(toEye).Normalize()

	diffuse := n.Dot(toLight)
	if diffuse < 0 {
		diffuse = 0
	}
	var specular float32
	if diffuse > 0 {
		if nh := n.Dot(half); nh > 0 {
			specular = float32(math.Pow(float64(nh), float64(m.Shininess)))
		}
	}
	c := mulVec(l.Ambient, m.Ambient).
		Add(mulVec(l.Diffuse, m.Diffuse).Mul(diffuse)).
		Add(mulVec(l.Specular, m.Specular).Mul(specular))
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return c
}
