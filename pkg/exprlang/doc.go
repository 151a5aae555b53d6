// Package exprlang is the generic expression parser that pkg/fstrlit's
// expression compiler (component E) re-enters for each `{...}` embedded in
// an f-string. It is deliberately small and has no knowledge of string
// literals or source files; pkg/fstrlit hands it an already-isolated
// fragment of text plus a starting line/column and gets back an AST plus
// any syntax errors, positioned by counting from that starting line/column.
package exprlang
