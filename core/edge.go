// SPDX-License-Identifier: MIT
//
// File: edge.go
// Role: Per-edge residual, cost, Jacobians and local gradient/Hessian blocks.
// Determinism:
//   - Pure functions of the edge and the supplied poses.

package core

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvslam/se2"
)

// EdgeContribution holds the local quantities of one edge, keyed by its
// endpoint indices. They are not yet placed into the global system.
type EdgeContribution struct {
	From, To int

	Chi2     float64
	GradFrom se2.Vec3 // J_fromᵀ·Ω·r
	GradTo   se2.Vec3 // J_toᵀ·Ω·r
	HFF      se2.Mat3 // J_fromᵀ·Ω·J_from
	HFT      se2.Mat3 // J_fromᵀ·Ω·J_to
	HTT      se2.Mat3 // J_toᵀ·Ω·J_to
}

// endpointPoses resolves the poses of both endpoints from poses, indexed by
// arena position.
func (e *Edge) endpointPoses(poses []se2.Pose) (a, b se2.Pose, err error) {
	if !e.linked || e.from < 0 || e.to < 0 || e.from >= len(poses) || e.to >= len(poses) {
		return a, b, fmt.Errorf("edge %q→%q: %w", e.From, e.To, ErrUnlinkedEdge)
	}

	return poses[e.from], poses[e.to], nil
}

// Residual returns r = vec(z⁻¹ ∘ (a⁻¹ ∘ b)) where a, b are the endpoint poses
// and z the measurement; the angular component lies in (-π, π].
//
// Errors:
//   - ErrUnlinkedEdge if the endpoints are not resolved within poses.
func (e *Edge) Residual(poses []se2.Pose) (se2.Vec3, error) {
	a, b, err := e.endpointPoses(poses)
	if err != nil {
		return se2.Vec3{}, err
	}

	return residual(a, b, e.Measurement), nil
}

func residual(a, b, z se2.Pose) se2.Vec3 {
	return se2.Between(z, se2.Between(a, b)).Vector()
}

// Chi2 returns rᵀ·Ω·r, which is never negative for a valid Ω.
func (e *Edge) Chi2(poses []se2.Pose) (float64, error) {
	r, err := e.Residual(poses)
	if err != nil {
		return 0, err
	}

	return r.Dot(e.Information.MulVec(r)), nil
}

// Jacobians returns the derivatives of the residual with respect to a local
// perturbation (se2.Retract) of the from and to poses.
//
// With d = a⁻¹∘b = (t_d, θ_d) and Rz the rotation of the measurement:
//
//	J_from = [ -Rzᵀ   Rzᵀ·(t_dy, -t_dx)ᵀ ]    J_to = [ Rzᵀ·R(θ_d)  0 ]
//	         [  0 0        -1            ]           [  0 0        1 ]
func (e *Edge) Jacobians(poses []se2.Pose) (jFrom, jTo se2.Mat3, err error) {
	a, b, err := e.endpointPoses(poses)
	if err != nil {
		return jFrom, jTo, err
	}
	jFrom, jTo = jacobians(a, b, e.Measurement)

	return jFrom, jTo, nil
}

func jacobians(a, b, z se2.Pose) (jFrom, jTo se2.Mat3) {
	d := se2.Between(a, b)
	cz, sz := math.Cos(z.Theta), math.Sin(z.Theta)
	cd, sd := math.Cos(d.Theta), math.Sin(d.Theta)

	// Rzᵀ = [cz sz; -sz cz]
	jFrom = se2.Mat3{
		{-cz, -sz, cz*d.Y - sz*d.X},
		{sz, -cz, -sz*d.Y - cz*d.X},
		{0, 0, -1},
	}
	// Rzᵀ·R(θd) = R(θd - θz)
	jTo = se2.Mat3{
		{cz*cd + sz*sd, -cz*sd + sz*cd, 0},
		{-sz*cd + cz*sd, sz*sd + cz*cd, 0},
		{0, 0, 1},
	}

	return jFrom, jTo
}

// Contribution evaluates the edge at poses and returns its local cost,
// gradient and Hessian blocks.
func (e *Edge) Contribution(poses []se2.Pose) (EdgeContribution, error) {
	a, b, err := e.endpointPoses(poses)
	if err != nil {
		return EdgeContribution{}, err
	}
	r := residual(a, b, e.Measurement)
	jf, jt := jacobians(a, b, e.Measurement)
	omega := e.Information

	wr := omega.MulVec(r)
	jfT, jtT := jf.T(), jt.T()
	jfTO, jtTO := jfT.Mul(omega), jtT.Mul(omega)

	return EdgeContribution{
		From:     e.from,
		To:       e.to,
		Chi2:     r.Dot(wr),
		GradFrom: jfT.MulVec(wr),
		GradTo:   jtT.MulVec(wr),
		HFF:      jfTO.Mul(jf),
		HFT:      jfTO.Mul(jt),
		HTT:      jtTO.Mul(jt),
	}, nil
}
