package sse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/visitnotes/consult"
)

// maxFrameSize bounds a single frame. Complete frames carry the whole
// candidate payload, so the ceiling is generous.
const maxFrameSize = 1 << 20

// Interface compliance check.
var _ consult.FrameStream = (*stream)(nil)

// stream implements [consult.FrameStream] by scanning data-only frames from
// an HTTP response body.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	closed  bool
	err     error // terminal error, if any
}

func newStream(ctx context.Context, body io.ReadCloser) *stream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	return &stream{
		body:    body,
		scanner: sc,
		ctx:     ctx,
	}
}

// Next reads lines until a complete frame is assembled and returns its data
// payload. The protocol is data-only: event names, comments, and unknown
// fields are skipped. Returns io.EOF when the server closes the stream.
func (s *stream) Next() ([]byte, error) {
	if s.closed {
		return nil, consult.ErrStreamClosed
	}
	if s.err != nil {
		return nil, s.err
	}

	var dataBuf strings.Builder
	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Empty line signals end of frame.
			if dataBuf.Len() > 0 {
				return []byte(dataBuf.String()), nil
			}
			continue
		}

		if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and non-data fields.
	}

	if err := s.scanner.Err(); err != nil {
		// Cancellation surfaces as a read error on the request body.
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			s.err = ctxErr
			return nil, s.err
		}
		s.err = fmt.Errorf("sse: %w", err)
		return nil, s.err
	}

	// Scanner exhausted without error: clean close.
	if dataBuf.Len() > 0 {
		return []byte(dataBuf.String()), nil
	}
	s.err = io.EOF
	return nil, io.EOF
}

// Close closes the underlying HTTP response body. Further Next calls report
// ErrStreamClosed.
func (s *stream) Close() error {
	s.closed = true
	return s.body.Close()
}
