package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads lines from an input stream while honoring context
// cancellation. A single background goroutine owns the underlying reader so
// a canceled read never races with the next one; the pending line is
// delivered to the next ReadLine call instead.
type LineReader struct {
	lines chan lineResult
	more  chan struct{}
}

type lineResult struct {
	err  error
	line string
}

// NewLineReader starts reading r.
func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{
		lines: make(chan lineResult, 1),
		more:  make(chan struct{}, 1),
	}
	go lr.loop(bufio.NewReader(r))
	return lr
}

func (lr *LineReader) loop(r *bufio.Reader) {
	for range lr.more {
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			lr.lines <- lineResult{err: err}
			close(lr.lines)
			return
		}
		lr.lines <- lineResult{line: line}
	}
}

// ReadLine returns the next line without its trailing newline and
// surrounding spaces. It returns io.EOF at end of input and
// ErrInputCancelled when ctx is done first.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	// Request a line unless one is already requested or buffered.
	select {
	case lr.more <- struct{}{}:
	default:
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}
