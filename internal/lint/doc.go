// Package lint produces structural and semantic diagnostics for CLDT
// documents. It shares the per-line classification with the formatter but
// never blocks it: linting always yields a (possibly empty) diagnostic list
// and never returns an error.
//
// Checks are line-local: a missing colon between a property and its value,
// unbalanced braces within one line, numeric values outside their documented
// ranges, deprecated property names, and a conditional end with no open
// block. Lines inside an open multi-line-parameter span are never flagged.
package lint
