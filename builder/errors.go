// SPDX-License-Identifier: MIT
// Package: lvslam/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only package-level sentinels are exposed; branch with errors.Is.
//   - Constructors attach context with %w; sentinels are never formatted.
//   - Validation panics are confined to option constructors (WithX...).

package builder

import "errors"

// ErrTooFewVertices indicates a vertex count below the constructor minimum
// (Loop needs 3, Path needs 2).
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidParameter indicates a non-finite or non-positive geometric
// parameter such as a loop radius or path step.
var ErrInvalidParameter = errors.New("builder: invalid parameter")

// ErrConstructFailed indicates the constructor could not be applied, either
// because it was nil or because the graph rejected a vertex or edge.
var ErrConstructFailed = errors.New("builder: construction failed")
