// Command tglookup serves the Telegram username lookup API, or runs a single lookup.
//
// Usage:
//
//	tglookup                     # serve GET /api?username= on TGLOOKUP_ADDR
//	tglookup -addr :9000         # serve on a different address
//	tglookup durov               # print one lookup as JSON
//	tglookup -summary durov      # print one lookup as a colored summary
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"

	"github.com/codeGROOVE-dev/tglookup/pkg/config"
	"github.com/codeGROOVE-dev/tglookup/pkg/report"
	"github.com/codeGROOVE-dev/tglookup/pkg/server"
	"github.com/codeGROOVE-dev/tglookup/pkg/telegram"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	addr := flag.String("addr", "", "listen address (overrides TGLOOKUP_ADDR)")
	envFile := flag.String("env", ".env", "optional dotenv file to load")
	summary := flag.Bool("summary", false, "print a human-readable summary instead of JSON (single lookup only)")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Usage: tglookup [options] [username]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *debug || *verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	color.NoColor = color.NoColor || *noColor

	logger := newLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := telegram.New(ctx, cfg.TelegramOptions(logger)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}
	assembler := report.New(cfg.ReportConfig())

	if flag.NArg() == 0 {
		if err := server.New(client, assembler, logger).ListenAndServe(ctx, cfg.Addr); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	username := strings.TrimPrefix(strings.TrimSpace(flag.Arg(0)), "@")
	if username == "" {
		fmt.Fprintln(os.Stderr, "Error: empty username")
		os.Exit(2)
	}
	start := time.Now()
	env := assembler.Build(start, username, client.Lookup(ctx, username))

	if *summary {
		err = report.WriteSummary(color.Output, env)
	} else {
		err = outputJSON(env)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
