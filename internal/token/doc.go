// Package token defines lexical token kinds for the analyzed TypeScript subset.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Only reserved words get keyword kinds; contextual keywords (as, of,
//     satisfies, get, set, readonly, async, ...) are lexed as identifiers and
//     recognized by the parser.
//   - Template literals are lexed in parts (TemplateFull or
//     TemplateHead / TemplateMiddle / TemplateTail); the parser drives
//     continuation scanning after each substitution.
package token
