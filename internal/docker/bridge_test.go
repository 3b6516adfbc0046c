package docker

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dockerFrame builds one Docker multiplexed-stream frame: an 8-byte header
// (stream type, three zero bytes, big-endian uint32 payload length)
// followed by the payload, matching what a non-tty ContainerAttach emits.
func dockerFrame(streamType byte, payload string) []byte {
	header := make([]byte, 8)
	header[0] = streamType
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))
	return append(header, []byte(payload)...)
}

func TestNewDemuxReader_ReassemblesFramesAcrossReadBoundaries(t *testing.T) {
	var raw bytes.Buffer
	raw.Write(dockerFrame(1, "hello "))
	raw.Write(dockerFrame(2, "oops "))
	raw.Write(dockerFrame(1, "world"))

	// OneByteReader forces every underlying Read to return a single byte,
	// the worst case for a naive "strip the first 8 bytes of each read"
	// demux: every read boundary falls inside a header or a payload.
	src := iotest.OneByteReader(bytes.NewReader(raw.Bytes()))

	demuxed, closeFn := newDemuxReader(src)
	defer closeFn()

	out, err := io.ReadAll(demuxed)
	require.NoError(t, err)
	assert.Equal(t, "hello oops world", string(out))
}

func TestNewDemuxReader_CoalescedFramesInOneRead(t *testing.T) {
	var raw bytes.Buffer
	raw.Write(dockerFrame(1, "first;"))
	raw.Write(dockerFrame(1, "second;"))
	raw.Write(dockerFrame(1, "third"))

	// A single bytes.Reader hands stdcopy the whole buffer in one Read,
	// the opposite extreme: several frames coalesced into one chunk.
	demuxed, closeFn := newDemuxReader(bytes.NewReader(raw.Bytes()))
	defer closeFn()

	out, err := io.ReadAll(demuxed)
	require.NoError(t, err)
	assert.Equal(t, "first;second;third", string(out))
}
