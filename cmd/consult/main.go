// Command consult submits visit notes to the consultation summary service
// and streams the generated documents.
//
// Usage:
//
//	CONSULT_TOKEN=... consult -patient "Jane Doe" -date 2025-11-09 -notes-file notes.txt [flags]
//
// Flags:
//
//	-base-url string    Service base URL (default http://localhost:8000)
//	-patient string     Patient name
//	-date string        Visit date, YYYY-MM-DD
//	-notes-file string  Path to the visit notes file ("-" for stdin)
//	-token string       Bearer token (overrides CONSULT_TOKEN)
//	-out string         Directory to write the three documents into
//	-plain              Print documents to stdout instead of the TUI
//	-v                  Verbose logging
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/visitnotes/consult"
	bt "github.com/visitnotes/consult/bubbletea"
	"github.com/visitnotes/consult/format"
	"github.com/visitnotes/consult/session"
	"github.com/visitnotes/consult/sse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "consult: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL   = flag.String("base-url", "", "Service base URL (default http://localhost:8000)")
		patient   = flag.String("patient", "", "Patient name")
		visitDate = flag.String("date", "", "Visit date, YYYY-MM-DD")
		notesFile = flag.String("notes-file", "", "Path to the visit notes file (\"-\" for stdin)")
		token     = flag.String("token", "", "Bearer token (overrides CONSULT_TOKEN)")
		outDir    = flag.String("out", "", "Directory to write the three documents into")
		plain     = flag.Bool("plain", false, "Print documents to stdout instead of the TUI")
		verbose   = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	notes, err := readNotes(*notesFile)
	if err != nil {
		return err
	}
	req := consult.ConsultationRequest{
		PatientName: *patient,
		VisitDate:   *visitDate,
		Notes:       notes,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	credential := *token
	if credential == "" {
		credential = os.Getenv("CONSULT_TOKEN")
	}

	var clientOpts []sse.Option
	if *baseURL != "" {
		clientOpts = append(clientOpts, sse.WithBaseURL(*baseURL))
	}
	transport := sse.New(clientOpts...)
	runner := session.New(transport, consult.StaticCredential(credential), session.WithLogger(logger))

	var payload consult.ConsultationSummaryResponse
	if *plain {
		payload, err = runPlain(ctx, runner, req)
	} else {
		payload, err = runTUI(ctx, runner, req)
	}
	if err != nil {
		return err
	}

	if *outDir != "" {
		if err := writeDocuments(*outDir, payload); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Documents written to %s\n", *outDir)
	}
	return nil
}

// runPlain streams the narration to stderr and prints the formatted
// documents to stdout once the payload validates.
func runPlain(ctx context.Context, runner *session.Runner, req consult.ConsultationRequest) (consult.ConsultationSummaryResponse, error) {
	payload, err := runner.Run(ctx, req, session.WithChunkHandler(func(content string) {
		fmt.Fprint(os.Stderr, content)
	}))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return consult.ConsultationSummaryResponse{}, err
	}

	fmt.Println("CLINICAL SUMMARY")
	fmt.Println()
	fmt.Println(format.ClinicalSummary(payload.ClinicalSummary))
	fmt.Println("NEXT STEPS")
	fmt.Println()
	fmt.Println(format.NextSteps(payload.NextSteps))
	fmt.Println("PATIENT EMAIL")
	fmt.Println()
	fmt.Println(format.PatientEmail(payload.PatientEmail))
	return payload, nil
}

func runTUI(ctx context.Context, runner *session.Runner, req consult.ConsultationRequest) (consult.ConsultationSummaryResponse, error) {
	sessionFn := func(ctx context.Context, req consult.ConsultationRequest, onChunk func(string)) (consult.ConsultationSummaryResponse, error) {
		return runner.Run(ctx, req, session.WithChunkHandler(onChunk))
	}
	m := bt.New(ctx, sessionFn, req, consult.DefaultTheme())

	final, err := bt.Run(ctx, m)
	if err != nil {
		return consult.ConsultationSummaryResponse{}, fmt.Errorf("TUI: %w", err)
	}
	if final.Err() != nil {
		return consult.ConsultationSummaryResponse{}, final.Err()
	}
	if final.State() != consult.StateDone {
		return consult.ConsultationSummaryResponse{}, errors.New("session did not complete")
	}
	return final.Payload(), nil
}

func readNotes(path string) (string, error) {
	switch path {
	case "":
		return "", errors.New("missing -notes-file")
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read notes from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read notes: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

// writeDocuments renders the three documents into dir, one file each.
func writeDocuments(dir string, payload consult.ConsultationSummaryResponse) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	docs := []struct {
		name    string
		content string
	}{
		{"clinical_summary.txt", format.ClinicalSummary(payload.ClinicalSummary)},
		{"next_steps.txt", format.NextSteps(payload.NextSteps)},
		{"patient_email.txt", format.PatientEmail(payload.PatientEmail)},
	}
	for _, doc := range docs {
		path := filepath.Join(dir, doc.name)
		if err := os.WriteFile(path, []byte(doc.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", doc.name, err)
		}
	}
	return nil
}
