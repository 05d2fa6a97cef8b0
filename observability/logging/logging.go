// Package logging configures the structured JSON logger the devnet harness
// uses, mirroring the shape of the ambient logging stack this module is
// grounded on. Unlike a long-running node, the devnet harness is a single
// opcode invocation per process, so this package folds correlation-id
// generation into Setup itself rather than leaving every caller to
// generate and attach one the way a multi-request service would.
package logging

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Setup configures the standard library logger to emit structured JSON and
// returns the underlying slog.Logger plus a freshly generated run ID
// attached to every line the logger emits. Both the JSON output and the
// bridged standard-library logger carry service, environment, and runId,
// so a single devnet invocation's log lines can be grepped out of a
// shared operator console by that id alone.
func Setup(service, env string) (*slog.Logger, string) {
	runID := uuid.New().String()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			case slog.LevelKey:
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			case slog.MessageKey:
				return slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	})

	attrs := []slog.Attr{slog.String("service", strings.TrimSpace(service)), slog.String("runId", runID)}
	if env = strings.TrimSpace(env); env != "" {
		attrs = append(attrs, slog.String("env", env))
	}

	withArgs := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		withArgs = append(withArgs, attr)
	}

	base := slog.New(handler).With(withArgs...)
	slog.SetDefault(base)

	stdBridge := slog.NewLogLogger(handler.WithAttrs(attrs), slog.LevelInfo)
	stdBridge.SetFlags(0)
	log.SetOutput(stdBridge.Writer())
	log.SetFlags(0)
	log.SetPrefix("")

	return base, runID
}
