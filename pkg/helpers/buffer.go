/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package helpers

import (
	"io"
)

// NopCloseWriter adds a no-op Close to a writer.
type NopCloseWriter struct {
	io.Writer
}

func NewNopCloseWriter(w io.Writer) *NopCloseWriter {
	return &NopCloseWriter{Writer: w}
}

func (ncw *NopCloseWriter) Close() error { return nil }
