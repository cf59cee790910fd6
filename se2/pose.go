// SPDX-License-Identifier: MIT

package se2

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvslam/mathutil"
)

// Pose is an element of SE(2). The zero value is the identity.
type Pose struct {
	X     float64 // translation along x
	Y     float64 // translation along y
	Theta float64 // heading in radians, (-π, π] after any operation
}

// NewPose returns a pose with its heading normalized.
func NewPose(x, y, theta float64) Pose {
	return Pose{X: x, Y: y, Theta: mathutil.NormalizeAngle(theta)}
}

// FromVector interprets v as (x, y, θ) and normalizes the heading.
func FromVector(v Vec3) Pose {
	return NewPose(v[0], v[1], v[2])
}

// Vector returns (X, Y, Theta).
func (p Pose) Vector() Vec3 {
	return Vec3{p.X, p.Y, p.Theta}
}

// IsFinite reports whether all three components are finite.
func (p Pose) IsFinite() bool {
	return p.Vector().IsFinite()
}

// Rotation returns the 2×2 rotation block of p as (cos θ, sin θ).
func (p Pose) Rotation() (c, s float64) {
	return math.Cos(p.Theta), math.Sin(p.Theta)
}

// Compose returns p ∘ q: q expressed in the frame of p.
//
//	x = px + cosθp·qx − sinθp·qy
//	y = py + sinθp·qx + cosθp·qy
//	θ = normalize(θp + θq)
func Compose(p, q Pose) Pose {
	c, s := p.Rotation()

	return Pose{
		X:     p.X + c*q.X - s*q.Y,
		Y:     p.Y + s*q.X + c*q.Y,
		Theta: mathutil.NormalizeAngle(p.Theta + q.Theta),
	}
}

// Compose is the method form of Compose(p, q).
func (p Pose) Compose(q Pose) Pose { return Compose(p, q) }

// Inverse returns p⁻¹ such that Compose(p, p⁻¹) is the identity.
func Inverse(p Pose) Pose {
	c, s := p.Rotation()

	return Pose{
		X:     -(c*p.X + s*p.Y),
		Y:     -(-s*p.X + c*p.Y),
		Theta: mathutil.NormalizeAngle(-p.Theta),
	}
}

// Inverse is the method form of Inverse(p).
func (p Pose) Inverse() Pose { return Inverse(p) }

// Between returns a⁻¹ ∘ b, the pose of b seen from a.
func Between(a, b Pose) Pose { return Compose(Inverse(a), b) }

// Retract applies the local increment d to p: the translation moves by
// R(θ)·(d0, d1) and the heading by d2.
func Retract(p Pose, d Vec3) Pose {
	c, s := p.Rotation()

	return Pose{
		X:     p.X + c*d[0] - s*d[1],
		Y:     p.Y + s*d[0] + c*d[1],
		Theta: mathutil.NormalizeAngle(p.Theta + d[2]),
	}
}

// Retract is the method form of Retract(p, d).
func (p Pose) Retract(d Vec3) Pose { return Retract(p, d) }

// Matrix returns the homogeneous transform
//
//	[cos θ  -sin θ  x]
//	[sin θ   cos θ  y]
//	[  0       0    1]
func (p Pose) Matrix() Mat3 {
	c, s := p.Rotation()

	return Mat3{
		{c, -s, p.X},
		{s, c, p.Y},
		{0, 0, 1},
	}
}

// FromMatrix recovers a pose from a homogeneous transform. Only the first
// column of the rotation block is consulted for the heading.
func FromMatrix(m Mat3) Pose {
	return Pose{X: m[0][2], Y: m[1][2], Theta: mathutil.NormalizeAngle(math.Atan2(m[1][0], m[0][0]))}
}

// ApproxEqual reports whether p and q agree within tol on translation and on
// the wrapped heading difference.
func (p Pose) ApproxEqual(q Pose, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol &&
		math.Abs(p.Y-q.Y) <= tol &&
		math.Abs(mathutil.AngleDiff(p.Theta, q.Theta)) <= tol
}

// String implements fmt.Stringer.
func (p Pose) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Theta)
}
