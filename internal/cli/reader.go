package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader provides context-aware line reading that can be interrupted,
// for the chat loop where a Ctrl+C must not leave the process stuck on a
// blocking read.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a line reader over the given input.
func NewLineReader(reader io.Reader) *LineReader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadLine reads one line, respecting context cancellation. The trailing
// newline is trimmed.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The reading goroutine keeps running until its read completes,
		// but the caller is released immediately.
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.err != io.EOF {
			return "", res.err
		}
		line := strings.TrimRight(res.value, "\r\n")
		if res.err == io.EOF && line == "" {
			return "", io.EOF
		}
		return line, nil
	}
}
