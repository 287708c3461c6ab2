// Copyright 2024 Harness Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render writes submission outcomes to an output region.
package render

import (
	"fmt"
	"io"
	"sync"
)

// A Region is an output sink whose entire content is replaced
// on every write. The most recent replacement wins; there is no
// history and no accumulation.
type Region interface {
	// Replace replaces the full content of the region.
	Replace(content string)
}

// Pre replaces the content of the region with s wrapped in a
// preformatted block. The message is inserted as raw markup.
// Calling Pre twice with the same input leaves the region in
// the same state.
func Pre(r Region, s string) {
	r.Replace("<pre>" + s + "</pre>")
}

// A Buffer is an in-memory region. The zero value is ready
// for use. Replacements are guarded so overlapping submissions
// cannot corrupt the content; the last replacement to land is
// the one observed.
type Buffer struct {
	mu      sync.Mutex
	content string
}

// Replace replaces the region content.
func (b *Buffer) Replace(content string) {
	b.mu.Lock()
	b.content = content
	b.mu.Unlock()
}

// Content returns the current region content.
func (b *Buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// A Writer is a region that emits each replacement to an
// underlying io.Writer, one replacement per line. It is used
// by the command line front-end where the terminal stands in
// for the output region.
type Writer struct {
	W io.Writer
}

// Replace writes the replacement content to the underlying writer.
func (w *Writer) Replace(content string) {
	fmt.Fprintln(w.W, content)
}
