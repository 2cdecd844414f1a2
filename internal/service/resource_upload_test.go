package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closeRecorder struct {
	bytes.Buffer
	closeErr error
	closed   int
}

func (w *closeRecorder) Close() error {
	w.closed++
	return w.closeErr
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestCopyAndClose(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		w := &closeRecorder{}
		assert.NoError(t, copyAndClose(w, strings.NewReader("frames")))
		assert.Equal(t, "frames", w.String())
		assert.Equal(t, 1, w.closed)
	})

	t.Run("close error is returned", func(t *testing.T) {
		w := &closeRecorder{closeErr: errors.New("disk full")}
		err := copyAndClose(w, strings.NewReader("frames"))
		assert.EqualError(t, err, "disk full")
		assert.Equal(t, 1, w.closed)
	})

	t.Run("copy error still closes", func(t *testing.T) {
		w := &closeRecorder{}
		err := copyAndClose(w, failingReader{})
		assert.EqualError(t, err, "read failed")
		assert.Equal(t, 1, w.closed)
	})
}
