package utils

import "io"

type flushableWriter interface {
	Flush() error
}

type flushingWriter struct {
	underlyingWriter io.Writer
}

// NewFlushingWriter wraps the provided writer so that every write is flushed
// immediately when the underlying writer supports flushing. Suite output must
// reach the operator in real time, not when a buffer happens to fill.
func NewFlushingWriter(underlyingWriter io.Writer) io.Writer {
	return &flushingWriter{underlyingWriter: underlyingWriter}
}

// Write forwards the payload and flushes the underlying writer when possible.
func (writer *flushingWriter) Write(payload []byte) (int, error) {
	bytesWritten, writeError := writer.underlyingWriter.Write(payload)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flusher, flushable := writer.underlyingWriter.(flushableWriter); flushable {
		if flushError := flusher.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}
