// Package markdown parses a CommonMark-flavoured subset of Markdown into a
// typed document tree.
//
// Parsing runs in two phases. The block phase scans preprocessed lines for
// ATX headings, thematic breaks, fenced code, blockquotes, lists and
// paragraphs; blockquote bodies are parsed again as nested documents. The
// inline phase tokenizes each block's text into escapes, entity references,
// emphasis, code spans, links, images and line breaks.
//
// Setext headings, indented code, tables, reference links and HTML
// detection are not recognised. Emphasis closes at the first unescaped
// matching delimiter rather than following CommonMark flanking rules.
//
// Parse is a pure function: it holds no state between calls and is safe
// for concurrent use. Recursion depth follows the nesting depth of the
// input.
package markdown
