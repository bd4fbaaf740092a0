// Command consult-stub serves a local consultation summary service that
// streams a canned payload. It exists so the client can be exercised
// end to end without the real generation backend.
//
// Flags:
//
//	-addr string            Listen address (default :8000)
//	-frame-delay duration   Delay between streamed frames (default 50ms)
//	-chunk-size int         Narration chunk size in bytes (default 32)
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/visitnotes/consult/stub"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "consult-stub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr       = flag.String("addr", ":8000", "Listen address")
		frameDelay = flag.Duration("frame-delay", 50*time.Millisecond, "Delay between streamed frames")
		chunkSize  = flag.Int("chunk-size", 32, "Narration chunk size in bytes")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server := stub.New(
		stub.WithLogger(logger),
		stub.WithFrameDelay(*frameDelay),
		stub.WithChunkSize(*chunkSize),
	)

	logger.Info("stub service listening", "addr", *addr)
	return http.ListenAndServe(*addr, server.Router())
}
