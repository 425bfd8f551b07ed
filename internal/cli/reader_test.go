package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ioPipe(t *testing.T) (*io.PipeReader, *io.PipeWriter) {
	t.Helper()
	return io.Pipe()
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("first\n  second  \nlast"))
	ctx := context.Background()

	for _, want := range []string{"first", "second", "last"} {
		got, err := r.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := r.ReadLine(ctx)
	require.ErrorIs(t, err, io.EOF)
	_, err = r.ReadLine(ctx)
	require.ErrorIs(t, err, io.EOF, "EOF is sticky")
}

func TestLineReader_CancelDoesNotLoseInput(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewLineReader(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.ReadLine(ctx)
	require.ErrorIs(t, err, ErrInputCancelled)

	go func() {
		_, _ = pw.Write([]byte("late line\n"))
	}()

	got, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late line", got)
	_ = pw.Close()
}
