package fstrlit

// fstringState is component F's running state: the pending
// literal-accumulation buffer (lastStr) and the expression list being
// built, plus fmode recording whether any expression was ever seen
// (distinguishing a plain Constant result from a JoinedStr).
type fstringState struct {
	lastStr    string
	hasLastStr bool
	fmode      bool
	exprs      *exprList
}

func (s *fstringState) concatLiteral(v Value) {
	if v.Text == "" {
		return
	}
	s.lastStr += v.Text
	s.hasLastStr = true
}

func (s *fstringState) flush(sp Span) {
	if !s.hasLastStr {
		return
	}
	s.exprs.append(&Constant{Value: TextValue(s.lastStr), Kind: KindNone, Sp: sp})
	s.lastStr = ""
	s.hasLastStr = false
}

// assembleFString implements component F. c must be positioned at the
// start of the body to assemble (the top of an f-string body at
// recurseLvl 0, or just past a ':' introducing a nested format spec at
// recurseLvl 1). It drives the literal scanner (C) and expression scanner
// (D) alternately, accumulating Constant and FormattedValue pieces, and
// returns either a single *Constant (no expressions ever seen, top-level
// body only) or a *JoinedStr.
//
// At recurseLvl 0 the cursor must land at the end of the body; at
// deeper levels it must land exactly on the closing '}', which this
// function leaves for scanExpr's caller to consume. legacyUnicode
// carries the `u`/`U` prefix flag through to the finished node's Kind
// when no expression is ever seen; nested format-spec recursions always
// pass false, since a format spec is never itself the token-level
// constant.
func assembleFString(ctx *Context, token *Token, c *cursor, rawMode bool, recurseLvl int, legacyUnicode bool) (Node, error) {
	state := &fstringState{exprs: newExprList()}
	startLine, startCol := c.line, c.col

	for {
		raw, status, err := scanLiteral(ctx, token, c, rawMode, recurseLvl)
		if err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			v, derr := decodeLiteral(ctx, token, raw, rawMode)
			if derr != nil {
				return nil, derr
			}
			state.concatLiteral(v)
		}

		if status == litDoubled {
			continue
		}

		if c.done() || c.peek() != '{' {
			break
		}

		state.fmode = true
		exprStartLine, exprStartCol := c.line, c.col

		rng, exprText, hasExprText, conv, formatSpec, serr := scanExpr(ctx, token, c, rawMode, recurseLvl)
		if serr != nil {
			return nil, serr
		}

		if hasExprText {
			state.lastStr += exprText
			state.hasLastStr = true
		}

		exprSrc := c.body[rng.start:rng.end]
		expr, cerr := compileExpr(ctx, token, exprSrc)
		if cerr != nil {
			return nil, cerr
		}

		state.flush(Span{StartLine: startLine, StartCol: startCol, EndLine: exprStartLine, EndCol: exprStartCol})

		fv := &FormattedValue{
			Value:      expr,
			Conversion: conv,
			FormatSpec: formatSpec,
			Sp:         Span{StartLine: exprStartLine, StartCol: exprStartCol, EndLine: c.line, EndCol: c.col},
		}
		ctx.Arena.Add(fv)
		state.exprs.append(fv)

		startLine, startCol = c.line, c.col
	}

	if recurseLvl == 0 {
		if !c.done() {
			return nil, syntaxErrorf(ctx, c.line, c.col, "f-string: unexpected end of string")
		}
	} else if c.done() || c.peek() != '}' {
		return nil, syntaxErrorf(ctx, c.line, c.col, "f-string: expecting '}'")
	}

	sp := Span{StartLine: token.Lineno, StartCol: token.ColOffset, EndLine: c.line, EndCol: c.col}
	if recurseLvl == 0 {
		sp.EndLine, sp.EndCol = token.EndLineno, token.EndColOffset
	}

	// A nested format spec (recurseLvl > 0) always comes back as a
	// *JoinedStr, matching FormattedValue.FormatSpec's contract, since a
	// format spec may itself contain literals and nested expressions and
	// is handled structurally the same way regardless of whether this
	// particular spec happened to contain one. Only the top-level body
	// (recurseLvl == 0) collapses a no-expression result down to a bare
	// Constant.
	if !state.fmode && recurseLvl == 0 {
		kind := KindNone
		if legacyUnicode {
			kind = KindUnicode
		}
		c := &Constant{Value: TextValue(state.lastStr), Kind: kind, Sp: sp}
		ctx.Arena.Add(c)
		return c, nil
	}

	state.flush(Span{StartLine: startLine, StartCol: startCol, EndLine: sp.EndLine, EndCol: sp.EndCol})
	joined := &JoinedStr{Values: state.exprs.items, Sp: sp}
	ctx.Arena.Add(joined)
	return joined, nil
}
