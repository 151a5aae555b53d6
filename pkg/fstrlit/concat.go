package fstrlit

// Concat implements adjacent string-token concatenation: a lexer handing
// this package a run of adjacent string literal tokens (as in `"a" "b"`)
// drives ParseString over each token in turn and merges the results the
// same way the assembler merges pieces within one token — adjacent
// Constants collapse into one, any JoinedStr's pieces splice into the
// running sequence, and the whole thing degenerates to a single Constant
// if no token ever contained an expression.
//
// Mixing bytes and text literals in one adjacent run is rejected, mirroring
// the host language's own restriction.
func Concat(ctx *Context, tokens []*Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, &InternalError{Message: "Concat requires at least one token"}
	}

	state := &fstringState{exprs: newExprList()}
	var rawBytes []byte
	bytesMode := false

	for i, tok := range tokens {
		res, err := ParseString(ctx, tok)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			bytesMode = res.Flags.BytesMode
		} else if res.Flags.BytesMode != bytesMode {
			return nil, syntaxErrorf(ctx, tok.Lineno, tok.ColOffset, "cannot mix bytes and nonbytes literals")
		}

		switch n := res.Node.(type) {
		case *Constant:
			if bytesMode {
				rawBytes = append(rawBytes, n.Value.Bytes...)
			} else {
				state.concatLiteral(n.Value)
			}
		case *JoinedStr:
			state.fmode = true
			for _, piece := range n.Values {
				if c, ok := piece.(*Constant); ok {
					state.concatLiteral(c.Value)
					continue
				}
				state.flush(piece.Span())
				state.exprs.append(piece)
			}
		}
	}

	sp := Span{
		StartLine: tokens[0].Lineno, StartCol: tokens[0].ColOffset,
		EndLine: tokens[len(tokens)-1].EndLineno, EndCol: tokens[len(tokens)-1].EndColOffset,
	}

	if bytesMode {
		c := &Constant{Value: BytesValue(rawBytes), Kind: KindNone, Sp: sp}
		ctx.Arena.Add(c)
		return c, nil
	}

	if !state.fmode {
		c := &Constant{Value: TextValue(state.lastStr), Kind: KindNone, Sp: sp}
		ctx.Arena.Add(c)
		return c, nil
	}

	state.flush(sp)
	joined := &JoinedStr{Values: state.exprs.items, Sp: sp}
	ctx.Arena.Add(joined)
	return joined, nil
}
