// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Input is the Scanner's single view onto source bytes: a decoding cursor
// with lookahead, line/column tracking, and the classification predicates
// the grammar needs (line break, blank, flow whitespace). It deliberately
// knows nothing about tokens or grammar state; the Scanner owns all of
// that on top of the primitives here.
type Input struct {
	r    *bufio.Reader
	name string

	buf    []byte // decoded-so-far lookahead buffer
	bufPos int     // read cursor into buf

	mark Mark

	tabSize int

	eof bool

	// generation is bumped whenever a new Input is substituted for this
	// one mid-stream (chained documents read from distinct readers); a
	// Mark captured before the swap is never compared across generations.
	generation int
}

// NewInputString builds an Input over an in-memory document.
func NewInputString(name, s string) *Input {
	return NewInputReader(name, stringReader(s))
}

// NewInputReader builds an Input that pulls from an io.Reader incrementally.
func NewInputReader(name string, r io.Reader) *Input {
	return &Input{
		r:       bufio.NewReader(r),
		name:    name,
		mark:    Mark{Line: 1},
		tabSize: 8,
	}
}

func stringReader(s string) io.Reader {
	return &stringReaderImpl{s: s}
}

// stringReaderImpl avoids pulling in strings.Reader just for this; it is a
// trivial io.Reader over a string.
type stringReaderImpl struct {
	s   string
	pos int
}

func (r *stringReaderImpl) Read(p []byte) (int, error) {
	if r.pos >= len(r.s) {
		return 0, io.EOF
	}
	n := copy(p, r.s[r.pos:])
	r.pos += n
	return n, nil
}

// Name identifies the input stream for diagnostics (filename or "<string>").
func (in *Input) Name() string { return in.name }

// Mark returns the current position.
func (in *Input) Mark() Mark { return in.mark }

// ensureLookahead guarantees at least n decoded bytes are available
// starting at bufPos, short of EOF.
func (in *Input) ensureLookahead(n int) {
	for !in.eof && len(in.buf)-in.bufPos < n {
		chunk := make([]byte, 4096)
		m, err := in.r.Read(chunk)
		if m > 0 {
			in.buf = append(in.buf, chunk[:m]...)
		}
		if err != nil {
			in.eof = true
		}
	}
}

// PeekAt returns the rune at lookahead offset i (0 is the next rune to be
// consumed) and its width in bytes, or (0, 0) past EOF. 0 is used as the
// end-of-stream sentinel rather than utf8.RuneError because NUL cannot
// otherwise appear as scanned content and every classification predicate
// below already treats it as "nothing here".
func (in *Input) PeekAt(i int) (rune, int) {
	in.ensureLookahead(in.bufPos + i + utf8.UTFMax)
	if in.bufPos+i >= len(in.buf) {
		return 0, 0
	}
	r, w := utf8.DecodeRune(in.buf[in.bufPos+i:])
	return r, w
}

// AtEOF reports whether no more input remains at the cursor.
func (in *Input) AtEOF() bool {
	_, w := in.PeekAt(0)
	return w == 0
}

// Peek is PeekAt(0).
func (in *Input) Peek() rune {
	r, _ := in.PeekAt(0)
	return r
}

// At reports whether the upcoming bytes at offset i match s exactly.
func (in *Input) At(i int, s string) bool {
	in.ensureLookahead(i + len(s))
	if in.bufPos+i+len(s) > len(in.buf) {
		return false
	}
	return string(in.buf[in.bufPos+i:in.bufPos+i+len(s)]) == s
}

// Advance consumes one rune and updates line/column tracking, treating any
// of \n, \r, \r\n, U+0085, U+2028, U+2029 as a single line break.
func (in *Input) Advance() {
	r, w := in.PeekAt(0)
	if w == 0 {
		return
	}
	in.advanceOctets(w, isLineBreakRune(r))
	if r == '\r' {
		if r2, w2 := in.PeekAt(0); r2 == '\n' {
			in.bufPos += w2
			in.mark.Index += w2
		}
	}
}

// AdvanceBy consumes n runes via repeated Advance.
func (in *Input) AdvanceBy(n int) {
	for i := 0; i < n; i++ {
		in.Advance()
	}
}

// AdvanceOctets consumes exactly n raw bytes without classifying them as a
// line break; used when a caller has already determined the break status
// itself (e.g. the scanner consuming a matched \r\n pair as one unit).
func (in *Input) AdvanceOctets(n int) {
	in.advanceOctets(n, false)
}

func (in *Input) advanceOctets(n int, isBreak bool) {
	in.bufPos += n
	in.mark.Index += n
	if isBreak {
		in.mark.Line++
		in.mark.Column = 0
	} else {
		in.mark.Column++
	}
}

func isLineBreakRune(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsLineBreakZ reports whether the rune at offset i is a line break or EOF.
func (in *Input) IsLineBreakZ(i int) bool {
	r, w := in.PeekAt(i)
	return w == 0 || isLineBreakRune(r)
}

// IsBlankZ reports whether the rune at offset i is space, tab, a line
// break, or EOF.
func (in *Input) IsBlankZ(i int) bool {
	r, w := in.PeekAt(i)
	if w == 0 {
		return true
	}
	return r == ' ' || r == '\t' || isLineBreakRune(r)
}

// IsFlowWS reports whether the rune at offset i is valid flow whitespace
// (space or tab; JSON mode additionally forbids tab as indentation but
// still accepts it as inter-token whitespace here).
func (in *Input) IsFlowWS(i int) bool {
	r, _ := in.PeekAt(i)
	return r == ' ' || r == '\t'
}

// IsFlowBlankZ reports whether the rune at offset i is flow whitespace, a
// line break, or EOF.
func (in *Input) IsFlowBlankZ(i int) bool {
	return in.IsFlowWS(i) || in.IsLineBreakZ(i)
}
