// Package clk provides the canonical data model for the clock tree
// decoder and diagnostic engine.
//
// This package contains type definitions and hardware envelope constants
// only. All other internal packages import clk; clk imports nothing
// internal. This keeps the model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - All frequency arithmetic is integer Hz (uint64), never float
//   - Every value type is immutable after construction; the pipeline
//     produces new values, it never mutates inputs
//   - Enumerations are closed: out-of-range bit patterns decode to an
//     explicit Unknown variant, never to a silent default
package clk
