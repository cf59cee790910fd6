// SPDX-License-Identifier: MIT

// Package mathutil holds the small numeric helpers shared by the pose-graph
// packages: angle normalization into (-π, π] and conversion between a
// symmetric matrix and its row-major upper triangle.
//
// All functions are pure and safe for concurrent use.
package mathutil
