// Package diag defines the diagnostic model shared by the lint pass and the
// CLI rendering layers.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the lint pass over CLDT documents.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// orchestration in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity is a four-level enum (Hint, Info, Warning, Error) defined in
//     severity.go. Hints are editor-style nudges (deprecations); they never
//     affect exit codes.
//   - Code is a compact numeric identifier (see codes.go) with a stable
//     kebab-case ID used in machine-readable output.
//   - Message is human-oriented text; keep it short and actionable.
//   - Primary span is the canonical source.Span pointing to the issue.
//   - Notes are optional secondary spans/messages for additional context.
//   - Fixes are optional Fix records describing how to address the problem.
//
// # Emitting diagnostics
//
// Producers report through a diag.Reporter to decouple emission from
// storage. The lint pass constructs a ReportBuilder via NewReportBuilder (or
// the helpers ReportError/ReportWarning/ReportInfo/ReportHint) and chains
// WithNote / WithFix before calling Emit. diag.BagReporter aggregates into a
// Bag, which supports sorting, deduplication and limits.
//
// Keep the data model deterministic: diagnostics are recomputed in full on
// every pass and may be serialised for caching, so new fields must stay
// value-like and side-effect free.
package diag
