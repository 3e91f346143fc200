// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package fy

import (
	"io"

	"github.com/fy-yaml/fy/internal/engine"
)

// Document is the root of one parsed YAML document.
type Document = engine.Document

// Parse reads every document out of src and calls fn with each one in
// turn; fn returning false stops the stream early.
func Parse(src []byte, fn func(*Document) bool, opts ...Option) error {
	return ParseReader(newBytesReader(src), fn, opts...)
}

// ParseReader is Parse over an io.Reader source.
func ParseReader(r io.Reader, fn func(*Document) bool, opts ...Option) error {
	cfg := engine.NewParseConfig(opts...)
	in := engine.NewInputReader("<input>", r)
	sc := engine.NewScanner(in, &cfg)
	p := engine.NewParser(sc, &cfg)
	c := engine.NewComposer(p, &cfg)
	return c.ComposeStream(fn)
}

// ParseSingle parses src, which is expected to hold exactly one document,
// and returns it.
func ParseSingle(src []byte, opts ...Option) (*Document, error) {
	opts = append(opts, WithSingleDocument(true))
	cfg := engine.NewParseConfig(opts...)
	in := engine.NewInputReader("<input>", newBytesReader(src))
	sc := engine.NewScanner(in, &cfg)
	p := engine.NewParser(sc, &cfg)
	c := engine.NewComposer(p, &cfg)
	return c.ComposeSingle()
}

func newBytesReader(b []byte) io.Reader { return &byteSliceReader{b: b} }

type byteSliceReader struct {
	b   []byte
	pos int
}

func (r *byteSliceReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}
