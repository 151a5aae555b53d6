// Package fstrlit is the string-literal parser of a source-language
// compiler front end: it turns a single lexical string token — prefix
// letters, quote characters, and body — into a Constant or JoinedStr AST
// node, the latter holding Constant and FormattedValue pieces. The package's hard part is the f-string
// machinery: recognizing prefix flags, decoding escapes with correct raw
// semantics, tokenizing the body into literal and expression pieces, and
// re-entering pkg/exprlang for each embedded expression with source
// positions mapped back to the original file.
package fstrlit
