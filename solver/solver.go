// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvslam/matrix"
)

// Names accepted by ByName.
const (
	NameGonum    = "gonum"
	NameCholesky = "cholesky"
	NameLU       = "lu"
)

// LinearSolver solves the square system h·x = b.
type LinearSolver interface {
	// Solve returns x. h and b are not modified.
	Solve(h matrix.Matrix, b []float64) ([]float64, error)
	// Name identifies the solver in logs and configuration.
	Name() string
}

var registry = map[string]func() LinearSolver{
	NameGonum:    func() LinearSolver { return NewGonumCholesky() },
	NameCholesky: func() LinearSolver { return NewCholesky() },
	NameLU:       func() LinearSolver { return NewLU() },
}

// Default returns the solver used when none is configured.
func Default() LinearSolver { return NewGonumCholesky() }

// ByName returns the solver registered under name (case-insensitive).
func ByName(name string) (LinearSolver, error) {
	mk, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownSolver)
	}

	return mk(), nil
}

// Names lists the registered solver names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// validateSystem checks h is square and b matches it.
func validateSystem(tag string, h matrix.Matrix, b []float64) error {
	if err := matrix.ValidateNotNil(h); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if err := matrix.ValidateSquare(h); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if err := matrix.ValidateVecLen(b, h.Rows()); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}

	return nil
}

// checkSolution rejects a step containing NaN or ±Inf.
func checkSolution(tag string, x []float64) ([]float64, error) {
	if err := matrix.ValidateFiniteVec(x); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", tag, ErrNonFiniteSolution, err)
	}

	return x, nil
}
