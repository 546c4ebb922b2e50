// Package cldt is the structural engine for CLDT documents: text that is
// either a single-line delivery URL or a hand-authored, indentation-based
// rendering of the same transformation pipeline.
//
// The package is made of four small, pure pieces:
//
//   - ClassifyLine assigns every physical line a structural role, threading
//     the multi-line-parameter state explicitly through each call.
//   - IsTransformation decides whether one slash-delimited token looks like
//     a pipeline component. It is a prefix-table heuristic, not a grammar;
//     ambiguous tokens are an accepted false-positive risk.
//   - BlockTracker follows conditional and layer blocks line by line and
//     yields the indentation depth the formatter renders at. Depth is
//     clamped at zero; malformed nesting never errors here.
//   - DecomposeURL splits a delivery URL into prefix, ordered transformation
//     segments, optional version and public-id segments.
//
// Everything is recomputed per pass. Nothing in this package performs IO or
// keeps state between invocations, so the formatter and the lint pass can
// run concurrently over the same text without coordination.
package cldt
