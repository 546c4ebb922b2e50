// Package format renders CLDT documents into their canonical text form.
//
// Responsibilities: exploding single-line delivery URLs into one component
// per line, re-indenting multi-line documents from block depth, delimiter
// normalization, inline-comment alignment and the blank-line policy around
// block boundaries. The output is idempotent: formatting formatted text is
// a no-op. It does no IO and never fails; unrecognized input passes through
// re-indented but textually intact.
package format
