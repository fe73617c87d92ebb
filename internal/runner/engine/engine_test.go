package engine

import (
	"bytes"
	"testing"

	"github.com/docker/docker/pkg/stdcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogStream struct {
	*bytes.Reader
	closed bool
}

func (f *fakeLogStream) Close() error {
	f.closed = true
	return nil
}

func TestDrainLogsClosesStream(t *testing.T) {
	framed := new(bytes.Buffer)
	stdcopy.NewStdWriter(framed, stdcopy.Stdout).Write([]byte("3 passed\n"))
	stdcopy.NewStdWriter(framed, stdcopy.Stderr).Write([]byte("warning: slow test\n"))
	stream := &fakeLogStream{Reader: bytes.NewReader(framed.Bytes())}

	stdout, stderr, err := drainLogs(stream)

	require.NoError(t, err)
	assert.Equal(t, "3 passed\n", stdout)
	assert.Equal(t, "warning: slow test\n", stderr)
	assert.True(t, stream.closed)
}

func TestDrainLogsClosesStreamOnError(t *testing.T) {
	// 帧头的流标识非法时也要把流关掉
	badFrame := []byte{0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	stream := &fakeLogStream{Reader: bytes.NewReader(badFrame)}

	_, _, err := drainLogs(stream)

	require.Error(t, err)
	assert.True(t, stream.closed)
}

func TestEnvList(t *testing.T) {
	list := envList(map[string]string{"MATRIX_PYTHON": "3.11", "MATRIX_OS": "ubuntu-22.04"})
	assert.Equal(t, []string{"MATRIX_OS=ubuntu-22.04", "MATRIX_PYTHON=3.11"}, list)
}
