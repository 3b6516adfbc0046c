package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/VERT-sh/waitress/pkg/logger"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// Bridge is a live attach to one container's multiplexed stdio: an mpsc
// sender for stdin commands and a broadcast of stdout/stderr chunks.
type Bridge struct {
	cli    *client.Client
	hijack types.HijackedResponse

	stdin  chan string
	stdout *broadcast
	done   chan struct{}
}

// Open attaches to containerName's stdio and starts the bridge's internal
// forwarding goroutine. Closing cancel tears the stream down.
func Open(ctx context.Context, containerName string, cancel <-chan struct{}) (*Bridge, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("connect to container daemon: %w", err)
	}

	resp, err := cli.ContainerAttach(ctx, containerName, container.AttachOptions{
		Stream: true,
		Stdin:  true,
		Stdout: true,
		Stderr: true,
	})
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("attach to container: %w", err)
	}

	b := &Bridge{
		cli:    cli,
		hijack: resp,
		stdin:  make(chan string, 512),
		stdout: newBroadcast(),
		done:   make(chan struct{}),
	}

	go b.run(cancel)

	return b, nil
}

// Send enqueues a stdin command. Safe for concurrent callers (the channel is
// the mpsc).
func (b *Bridge) Send(command string) {
	select {
	case b.stdin <- command:
	case <-b.done:
	}
}

// Subscribe registers a new stdout subscriber.
func (b *Bridge) Subscribe() (<-chan string, func()) {
	return b.stdout.subscribe()
}

// run is the bridge's single internal task: selects on cancellation, the
// next demultiplexed stdout/stderr frame, and the next stdin command, per
// the attach bridge contract. A stdin write error is logged and the loop
// continues; a stdout read error (including EOF when the container exits)
// ends the run. Termination is observed by peers through cancellation or a
// closed stdout broadcast, since run always closes b.stdout before returning.
func (b *Bridge) run(cancel <-chan struct{}) {
	defer close(b.done)
	defer b.stdout.close()
	defer b.hijack.Close()
	defer b.cli.Close()

	demuxed, closeDemux := newDemuxReader(b.hijack.Reader)
	defer closeDemux()

	frames := make(chan string, 512)
	go func() {
		defer close(frames)
		buf := make([]byte, 4096)
		for {
			n, err := demuxed.Read(buf)
			if n > 0 {
				frames <- string(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-cancel:
			return

		case frame, ok := <-frames:
			if !ok {
				return
			}
			b.stdout.publish(frame)

		case command, ok := <-b.stdin:
			if !ok {
				return
			}
			if _, err := b.hijack.Conn.Write([]byte(command)); err != nil {
				logger.Warn("stdin write failed", map[string]interface{}{"error": err.Error()})
				continue
			}
		}
	}
}

// newDemuxReader wraps src, the raw attach stream, in Docker's stdcopy
// demultiplexer: a non-tty attach frames every stdout/stderr chunk behind an
// 8-byte header (stream type, then a big-endian uint32 payload length), and
// a single underlying Read can return a partial header, a partial payload,
// or several coalesced frames. stdcopy.StdCopy reads exactly one frame at a
// time via io.ReadFull regardless of those boundaries and writes the
// payloads, in order, to a single combined stream. The returned close
// function releases the pipe; callers must call it once done reading.
func newDemuxReader(src io.Reader) (io.Reader, func()) {
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, src)
		pw.CloseWithError(err)
	}()
	return pr, func() { pr.Close() }
}
