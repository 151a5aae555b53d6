package fstrlit

// Arena is the bump-allocated pool that owns every AST node and decoded
// text/bytes value produced for a single parse. This subsystem is
// modeled on a C allocator, where the arena owns every node explicitly;
// in Go the natural analogue is simply "the nodes reachable from the
// returned Expr are owned by the caller's GC" — Arena still exists as a
// named collaborator so the allocation-transfer steps in components F
// and G (and Concat) have a concrete counterpart to call, and so a future caller that wants
// deterministic node lifetimes (e.g. object pooling across many parses)
// has a single seam to replace.
type Arena struct {
	nodes []any
}

// NewArena creates an empty arena.
func NewArena() *Arena { return &Arena{} }

// Add transfers ownership of obj to the arena and returns it unchanged.
func (a *Arena) Add(obj any) any {
	a.nodes = append(a.nodes, obj)
	return obj
}

// Len reports how many objects the arena has taken ownership of. Mostly
// useful in tests asserting that scratch values were transferred rather
// than leaked.
func (a *Arena) Len() int { return len(a.nodes) }

// Context carries the feature-version gate, the arena nodes are
// allocated from, the file name used for diagnostics, the diagnostics
// sink, and the mutable error-tracking slots. Components short-circuit on
// the errors they return, not on these slots.
type Context struct {
	// FeatureVersion gates syntax introduced after the language's initial
	// release: f-strings require >= 6, self-documenting `{x=}` requires
	// >= 8.
	FeatureVersion int

	Arena       *Arena
	Filename    string
	Diagnostics Diagnostics

	// ErrToken is the token most recently passed to a warning, for
	// callers that want to point a caret at it independently of the
	// returned error's own position. Each warning overwrites it; syntax
	// errors do not set it.
	ErrToken *Token

	// HasError is the error indicator flag, set whenever a syntax error
	// is raised. No component reads it.
	HasError bool
}

// NewContext builds a Context with the given feature version, a fresh
// arena, and a diagnostics sink that discards warnings.
func NewContext(filename string, featureVersion int) *Context {
	return &Context{
		FeatureVersion: featureVersion,
		Arena:          NewArena(),
		Filename:       filename,
		Diagnostics:    NopDiagnostics{},
	}
}

func (c *Context) warn(token *Token, line int, format string, args ...any) error {
	c.ErrToken = token
	if c.Diagnostics == nil {
		return nil
	}
	return c.Diagnostics.Warn(c.Filename, line, format, args...)
}
