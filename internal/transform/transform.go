package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/camtools/hfcs2scene/internal/lens"
)

// sourceUnitsToMeters rescales composite positions (thousandths of a pixel
// unit) to target metric units.
const sourceUnitsToMeters = (1.0 / 1000.0) * lens.PixelsPerMM

// Vec3 is a point or euler triple. For rotations the components are degrees
// in the capture app's convention: stored inverted relative to the target
// engine.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Matrix4 is a row-major 4x4 world transform. A plain value type so scene
// documents serialize without dragging matrix internals along.
type Matrix4 [4][4]float64

// Scale converts a source-space position to target metric units.
func Scale(v Vec3) Vec3 {
	return Vec3{
		X: v.X * sourceUnitsToMeters,
		Y: v.Y * sourceUnitsToMeters,
		Z: v.Z * sourceUnitsToMeters,
	}
}

// CameraWorld builds the target-space world transform for a camera sample.
// The rotation components are negated (orientations were inverted on
// export), converted to radians, and composed with axis order Z, then Y,
// then X. Both the axis order and the basis change are load-bearing
// conventions of the two tools; see BasisChange.
func CameraWorld(pos, rotDegrees Vec3) Matrix4 {
	rx := -rotDegrees.X * math.Pi / 180.0
	ry := -rotDegrees.Y * math.Pi / 180.0
	rz := -rotDegrees.Z * math.Pi / 180.0

	// Z applied first, then Y, then X.
	rot := mul(rotationX(rx), rotationY(ry), rotationZ(rz))
	loc := translation(Scale(pos))

	return toMatrix4(mul(basisDense(), loc, rot))
}

// AnchorWorld builds the target-space world transform for a static anchor
// point: position scaling, basis change, and the fixed -90 degree local-X
// correction for the marker glyph's default orientation. The correction
// cancels the rotational part of the basis change, leaving the marker
// upright at the mapped position.
func AnchorWorld(pos Vec3) Matrix4 {
	loc := translation(Scale(pos))
	return toMatrix4(mul(basisDense(), loc, rotationX(-math.Pi/2)))
}

// BasisChange returns the fixed transform mapping the capture app's
// coordinate system (forward=Z, up=Y) into the target engine's
// (forward=-Y, up=Z). Axes map X->X, Y->Z, Z->-Y, a +90 degree rotation
// about X.
func BasisChange() Matrix4 {
	return toMatrix4(basisDense())
}

// BasisChangeInverse returns the target-to-source mapping, the transpose of
// BasisChange.
func BasisChangeInverse() Matrix4 {
	return toMatrix4(rotationX(-math.Pi / 2))
}

// Apply transforms the point v by m.
func Apply(m Matrix4, v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// Translation returns m's translation column.
func (m Matrix4) Translation() Vec3 {
	return Vec3{X: m[0][3], Y: m[1][3], Z: m[2][3]}
}

func basisDense() *mat.Dense {
	return rotationX(math.Pi / 2)
}

func identity() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func translation(v Vec3) *mat.Dense {
	m := identity()
	m.Set(0, 3, v.X)
	m.Set(1, 3, v.Y)
	m.Set(2, 3, v.Z)
	return m
}

func rotationX(rad float64) *mat.Dense {
	s, c := math.Sin(rad), math.Cos(rad)
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

func rotationY(rad float64) *mat.Dense {
	s, c := math.Sin(rad), math.Cos(rad)
	return mat.NewDense(4, 4, []float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

func rotationZ(rad float64) *mat.Dense {
	s, c := math.Sin(rad), math.Cos(rad)
	return mat.NewDense(4, 4, []float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// mul composes left to right: mul(a, b, c) = a * b * c.
func mul(ms ...*mat.Dense) *mat.Dense {
	out := identity()
	for _, m := range ms {
		next := mat.NewDense(4, 4, nil)
		next.Mul(out, m)
		out = next
	}
	return out
}

func toMatrix4(d *mat.Dense) Matrix4 {
	var m Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r][c] = d.At(r, c)
		}
	}
	return m
}
