// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import "fmt"

// Mark identifies a position in an input stream: a byte offset plus the
// 1-indexed line and 0-indexed column it falls on. Index counts bytes;
// Line and Column advance by code point, except where an octets operation
// is used explicitly (see Input.AdvanceOctets).
type Mark struct {
	Index  int // byte offset from the start of the input
	Line   int // 1-indexed line number
	Column int // 0-indexed column number
}

// String renders the mark as e.g. "line 3, column 5".
func (m Mark) String() string {
	if m.Line == 0 {
		return "<unknown position>"
	}
	if m.Column == 0 {
		return fmt.Sprintf("line %d", m.Line)
	}
	return fmt.Sprintf("line %d, column %d", m.Line, m.Column+1)
}

// Less reports whether m sorts strictly before other in source order.
func (m Mark) Less(other Mark) bool {
	return m.Index < other.Index
}
