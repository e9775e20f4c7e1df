package pptxscene

import (
	"bytes"
	"io"
)

// Open reads a PPTX file from disk and returns its scene.
// This is a convenience wrapper around NewReader + Read.
func Open(path string, opts ...Option) (*Document, error) {
	reader, err := NewReader(ReaderPowerPoint2007, opts...)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

// ReadFrom reads a PPTX from an io.ReaderAt with the given size.
func ReadFrom(r io.ReaderAt, size int64, opts ...Option) (*Document, error) {
	reader, err := NewReader(ReaderPowerPoint2007, opts...)
	if err != nil {
		return nil, err
	}
	return reader.ReadFromReader(r, size)
}

// Parse converts an in-memory PPTX.
func Parse(data []byte, opts ...Option) (*Document, error) {
	return ReadFrom(bytes.NewReader(data), int64(len(data)), opts...)
}
