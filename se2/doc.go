// SPDX-License-Identifier: MIT

// Package se2 implements rigid-body poses in the plane: position (X, Y) and
// heading Theta in radians, always kept in (-π, π].
//
// Besides the group operations (Compose, Inverse) the package fixes the
// perturbation convention used by the optimizer:
//
//	Retract(p, δ) = Compose(p, Pose{δ[0], δ[1], δ[2]})
//
// i.e. δ is expressed in the local frame of p. Jacobians elsewhere in the
// module are derived for exactly this retraction.
//
// Vec3 and Mat3 are fixed-size value types for tangent vectors and 3×3
// blocks (information matrices, Jacobians, Hessian blocks); they never
// allocate.
package se2
