package fstrlit

// PrefixFlags is the output of component B.
//
// Invariants enforced by the recognizer, never by callers:
//   - CharMode implies RawMode
//   - RegexMode implies RawMode
//   - FormatMode and BytesMode are mutually exclusive
//   - IsChar forbids every other flag
type PrefixFlags struct {
	BytesMode  bool
	RawMode    bool
	RegexMode  bool
	CharMode   bool
	FormatMode bool
	IsChar     bool

	// LegacyUnicode records a `u`/`U` prefix letter. It changes nothing
	// about decoding; it only selects Constant.Kind = KindUnicode on the
	// finished node, preserved for source round-tripping.
	LegacyUnicode bool
}
