// Package diag defines the core diagnostic model shared by all analysis phases.
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by lexer / parser / lint passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag performs no formatting, IO, or CLI integration. Rendering lives
// in internal/diagfmt, orchestration in internal/driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a short human message, the primary source.Span, and
// optional Notes. Notes must add new context (e.g. "declared here"), never
// repeat the message.
//
// Phases emit through a diag.Reporter; diag.BagReporter aggregates into a Bag,
// which supports sorting, deduplication, and merging. Keep the data model
// deterministic so diagnostics can be serialised for caching and testing.
package diag
