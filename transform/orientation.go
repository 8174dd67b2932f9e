// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/tidop/geomath/matrix"
)

// gimbalTolerance is the |cos| (Tait-Bryan) or |sin| (proper Euler) of the
// middle angle below which the first and third axes are treated as aligned.
const gimbalTolerance = 1e-12

// EulerOrder names the axis sequence of an angle triple (a1, a2, a3); the
// rotation is R = R_first(a1)·R_second(a2)·R_third(a3).
type EulerOrder int

// Proper Euler orders repeat the first axis; Tait-Bryan orders use three
// distinct axes. EulerXYZ is the omega-phi-kappa convention of NewRotation3D.
const (
	EulerZXZ EulerOrder = iota
	EulerXYX
	EulerYZY
	EulerZYZ
	EulerXZX
	EulerYXY
	EulerXYZ
	EulerYZX
	EulerZXY
	EulerXZY
	EulerZYX
	EulerYXZ
)

var eulerAxes = [...][3]int{
	EulerZXZ: {2, 0, 2},
	EulerXYX: {0, 1, 0},
	EulerYZY: {1, 2, 1},
	EulerZYZ: {2, 1, 2},
	EulerXZX: {0, 2, 0},
	EulerYXY: {1, 0, 1},
	EulerXYZ: {0, 1, 2},
	EulerYZX: {1, 2, 0},
	EulerZXY: {2, 0, 1},
	EulerXZY: {0, 2, 1},
	EulerZYX: {2, 1, 0},
	EulerYXZ: {1, 0, 2},
}

func (o EulerOrder) valid() bool { return o >= EulerZXZ && o <= EulerYXZ }

// String returns the lower-case axis sequence, e.g. "zyx".
func (o EulerOrder) String() string {
	if !o.valid() {
		return fmt.Sprintf("EulerOrder(%d)", int(o))
	}
	const names = "xyz"
	ax := eulerAxes[o]

	return string([]byte{names[ax[0]], names[ax[1]], names[ax[2]]})
}

// ParseEulerOrder accepts an axis sequence such as "xyz" or "ZXZ".
func ParseEulerOrder(s string) (EulerOrder, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for o := EulerZXZ; o <= EulerYXZ; o++ {
		if o.String() == want {
			return o, nil
		}
	}

	return 0, fmt.Errorf("ParseEulerOrder(%q): %w", s, ErrUnknownEulerOrder)
}

func elementary(axis int, a float64) matrix.Mat3 {
	switch axis {
	case 0:
		return rotX(a)
	case 1:
		return rotY(a)
	default:
		return rotZ(a)
	}
}

// NewRotationEuler returns R_first(a1)·R_second(a2)·R_third(a3) for the axes
// named by order.
//
// Errors:
//   - ErrUnknownEulerOrder.
func NewRotationEuler(order EulerOrder, a1, a2, a3 float64) (*Rotation, error) {
	if !order.valid() {
		return nil, fmt.Errorf("%s: %v: %w", opNewRotation, order, ErrUnknownEulerOrder)
	}
	ax := eulerAxes[order]
	m := elementary(ax[0], a1).Mul(elementary(ax[1], a2)).Mul(elementary(ax[2], a3))

	return &Rotation{dim: 3, r: m.Dense()}, nil
}

// EulerAnglesOrder recovers (a1, a2, a3) of a 3D rotation for the given order.
//
// Behavior highlights:
//   - a2 lies in [-π/2, π/2] for Tait-Bryan orders and in [0, π] for proper
//     Euler orders; a1 and a3 lie in (-π, π].
//   - At gimbal lock only a1+a3 (or a1-a3) is determined; a3 is set to 0.
//
// Implementation:
//   - With (i, j) the first two axes, k the remaining one and s = ±1 the
//     parity of (i, j, k), the angles are read off R[i][*] and R[*][i] (proper)
//     or R[i][*] and R[*][k] (Tait-Bryan) with atan2.
//
// Errors:
//   - ErrInvalidDimension for 2D rotations, ErrUnknownEulerOrder.
func (r *Rotation) EulerAnglesOrder(order EulerOrder) (a1, a2, a3 float64, err error) {
	if r.dim != 3 {
		return 0, 0, 0, fmt.Errorf("Rotation.EulerAngles: dim %d: %w", r.dim, ErrInvalidDimension)
	}
	if !order.valid() {
		return 0, 0, 0, fmt.Errorf("Rotation.EulerAngles: %v: %w", order, ErrUnknownEulerOrder)
	}
	ax := eulerAxes[order]
	i, j := ax[0], ax[1]
	k := 3 - i - j
	s := 1.0
	if (j-i+3)%3 != 1 {
		s = -1
	}
	m := r.r.Elem

	if ax[2] == i {
		sb := math.Hypot(m(i, j), m(i, k))
		a2 = math.Atan2(sb, m(i, i))
		if sb > gimbalTolerance {
			a1 = math.Atan2(m(j, i), -s*m(k, i))
			a3 = math.Atan2(m(i, j), s*m(i, k))

			return a1, a2, a3, nil
		}
	} else {
		cb := math.Hypot(m(i, i), m(i, j))
		a2 = math.Atan2(s*m(i, k), cb)
		if cb > gimbalTolerance {
			a1 = math.Atan2(-s*m(j, k), m(k, k))
			a3 = math.Atan2(-s*m(i, j), m(i, i))

			return a1, a2, a3, nil
		}
	}
	// R = R_i(a1)·R_j(a2): column j is R_i(a1)·e_j.
	a1 = math.Atan2(s*m(k, j), m(j, j))

	return a1, a2, 0, nil
}

// Quaternion is the rotation quaternion W + X·i + Y·j + Z·k.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion is the null rotation.
func IdentityQuaternion() Quaternion { return Quaternion{W: 1} }

// Norm returns the Euclidean length of q.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q scaled to unit length, or matrix.ErrZeroVector.
func (q Quaternion) Normalize() (Quaternion, error) {
	n := q.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Quaternion{}, fmt.Errorf("Quaternion.Normalize: norm %g: %w", n, matrix.ErrZeroVector)
	}

	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}, nil
}

// Conjugate negates the vector part; for a unit quaternion it is the inverse.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Mul returns the Hamilton product q·o, the rotation that applies o first.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Rotate applies the rotation of q (normalized first) to p.
func (q Quaternion) Rotate(p r3.Vector) (r3.Vector, error) {
	u, err := q.Normalize()
	if err != nil {
		return r3.Vector{}, err
	}
	// p' = p + 2w(v×p) + 2v×(v×p), v the vector part.
	v := r3.Vector{X: u.X, Y: u.Y, Z: u.Z}
	c := v.Cross(p)

	return p.Add(c.Mul(2 * u.W)).Add(v.Cross(c).Mul(2)), nil
}

// AxisAngle returns the axis and angle (in [0, π]) of the rotation q. The
// null rotation reports the x axis with angle 0.
func (q Quaternion) AxisAngle() (AxisAngle, error) {
	u, err := q.Normalize()
	if err != nil {
		return AxisAngle{}, err
	}
	if u.W < 0 {
		u = Quaternion{X: -u.X, Y: -u.Y, Z: -u.Z, W: -u.W}
	}
	n := math.Sqrt(u.X*u.X + u.Y*u.Y + u.Z*u.Z)
	if n == 0 {
		return AxisAngle{Axis: r3.Vector{X: 1}}, nil
	}

	return AxisAngle{
		Axis:  r3.Vector{X: u.X / n, Y: u.Y / n, Z: u.Z / n},
		Angle: 2 * math.Atan2(n, u.W),
	}, nil
}

// AxisAngle is a rotation by Angle radians about Axis (right-handed).
type AxisAngle struct {
	Axis  r3.Vector
	Angle float64
}

// Quaternion returns the unit quaternion of aa.
//
// Errors:
//   - matrix.ErrZeroVector for a zero axis.
func (aa AxisAngle) Quaternion() (Quaternion, error) {
	n := aa.Axis.Norm()
	if n == 0 {
		return Quaternion{}, fmt.Errorf("AxisAngle.Quaternion: %w", matrix.ErrZeroVector)
	}
	s, c := math.Sincos(aa.Angle / 2)
	s /= n

	return Quaternion{X: s * aa.Axis.X, Y: s * aa.Axis.Y, Z: s * aa.Axis.Z, W: c}, nil
}

// NewRotationFromQuaternion returns the 3D rotation of q, normalized first.
//
// Errors:
//   - matrix.ErrZeroVector.
func NewRotationFromQuaternion(q Quaternion) (*Rotation, error) {
	u, err := q.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewRotation, err)
	}
	x2, y2, z2 := 2*u.X, 2*u.Y, 2*u.Z
	xx, xy, xz, xw := x2*u.X, x2*u.Y, x2*u.Z, x2*u.W
	yy, yz, yw := y2*u.Y, y2*u.Z, y2*u.W
	zz, zw := z2*u.Z, z2*u.W
	m := matrix.Mat3{
		{1 - yy - zz, xy - zw, xz + yw},
		{xy + zw, 1 - xx - zz, yz - xw},
		{xz - yw, yz + xw, 1 - xx - yy},
	}

	return &Rotation{dim: 3, r: m.Dense()}, nil
}

// NewRotationAxisAngle returns the rotation by angle radians about axis
// (Rodrigues' formula). The axis need not be unit length.
//
// Errors:
//   - matrix.ErrZeroVector.
func NewRotationAxisAngle(axis r3.Vector, angle float64) (*Rotation, error) {
	n := axis.Norm()
	if n == 0 {
		return nil, fmt.Errorf("%s: axis: %w", opNewRotation, matrix.ErrZeroVector)
	}
	u := axis.Mul(1 / n)
	s, c := math.Sincos(angle)
	t := 1 - c
	m := matrix.Mat3{
		{u.X*u.X*t + c, u.X*u.Y*t - u.Z*s, u.X*u.Z*t + u.Y*s},
		{u.X*u.Y*t + u.Z*s, u.Y*u.Y*t + c, u.Y*u.Z*t - u.X*s},
		{u.X*u.Z*t - u.Y*s, u.Y*u.Z*t + u.X*s, u.Z*u.Z*t + c},
	}

	return &Rotation{dim: 3, r: m.Dense()}, nil
}

// Quaternion returns the unit quaternion of a 3D rotation with W >= 0.
//
// Implementation:
//   - Branch on the largest of W, X, Y, Z (read off the diagonal) and
//     divide the off-diagonal sums by it, so the square root never sees a
//     value near zero.
func (r *Rotation) Quaternion() (Quaternion, error) {
	if r.dim != 3 {
		return Quaternion{}, fmt.Errorf("Rotation.Quaternion: dim %d: %w", r.dim, ErrInvalidDimension)
	}
	m := r.r.Elem
	var q Quaternion
	if r22 := m(2, 2); r22 <= 0 {
		if d := m(1, 1) - m(0, 0); d <= 0 {
			q.X = math.Sqrt((1 - r22 - d) / 4)
			f := 4 * q.X
			q.Y = (m(0, 1) + m(1, 0)) / f
			q.Z = (m(0, 2) + m(2, 0)) / f
			q.W = (m(2, 1) - m(1, 2)) / f
		} else {
			q.Y = math.Sqrt((1 - r22 + d) / 4)
			f := 4 * q.Y
			q.X = (m(0, 1) + m(1, 0)) / f
			q.Z = (m(1, 2) + m(2, 1)) / f
			q.W = (m(0, 2) - m(2, 0)) / f
		}
	} else {
		if sum := m(1, 1) + m(0, 0); sum <= 0 {
			q.Z = math.Sqrt((1 + r22 - sum) / 4)
			f := 4 * q.Z
			q.X = (m(0, 2) + m(2, 0)) / f
			q.Y = (m(1, 2) + m(2, 1)) / f
			q.W = (m(1, 0) - m(0, 1)) / f
		} else {
			q.W = math.Sqrt((1 + r22 + sum) / 4)
			f := 4 * q.W
			q.X = (m(2, 1) - m(1, 2)) / f
			q.Y = (m(0, 2) - m(2, 0)) / f
			q.Z = (m(1, 0) - m(0, 1)) / f
		}
	}
	if q.W < 0 {
		q = Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	}

	return q, nil
}

// AxisAngle returns the axis and angle of a 3D rotation.
func (r *Rotation) AxisAngle() (AxisAngle, error) {
	q, err := r.Quaternion()
	if err != nil {
		return AxisAngle{}, err
	}

	return q.AxisAngle()
}
