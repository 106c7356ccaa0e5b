package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/atotto/clipboard"

	"github.com/unkn0wn-root/curlparse/internal/config"
	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/telemetry"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var usage = heredoc.Docf(`
	Usage: curlparse [flags] [file]

	Reads a curl command (or text that contains one) and prints the request
	it describes. Input is taken from -c, then -file or the first argument,
	then the clipboard when -clipboard is set, and finally stdin.

	Examples:
	  curlparse -c "curl -X POST https://api.example.com -d '{\"a\":1}'"
	  pbpaste | curlparse -format http -out request.http
	  curlparse -all -format summary notes.md

	Constructs that cannot be reproduced are reported on stderr with one of
	these codes: %s.

	Flags:
`, warningCodeList())

func warningCodeList() string {
	codes := make([]string, len(curl.WarningCodes))
	for i, c := range curl.WarningCodes {
		codes[i] = string(c)
	}
	return strings.Join(codes, ", ")
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	var (
		opts            cliOptions
		showVersion     bool
		traceOTEndpoint string
		traceOTInsecure bool
		traceOTService  string
	)

	telemetryCfg := telemetry.ConfigFromEnv(os.Getenv)
	traceOTEndpoint = telemetryCfg.Endpoint
	traceOTInsecure = telemetryCfg.Insecure
	traceOTService = telemetryCfg.ServiceName

	settings, settingsFile, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings load error: %v", err)
		settings = config.DefaultSettings()
		settingsFile = config.SettingsHandle{
			Path:   filepath.Join(config.Dir(), "settings.toml"),
			Format: config.SettingsFormatTOML,
		}
	}

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.command, "c", "", "Curl command to parse")
	flag.StringVar(&opts.file, "file", "", "Read the command from a file")
	flag.BoolVar(&opts.clipboard, "clipboard", false, "Read the command from the system clipboard")
	flag.StringVar(
		&opts.format,
		"format",
		string(settings.Output.Format),
		"Output format: json, yaml, toml, http or summary",
	)
	flag.StringVar(&opts.out, "out", "", "Write output to a file instead of stdout")
	flag.BoolVar(&opts.overwrite, "overwrite", false, "Replace the -out file if it exists")
	flag.BoolVar(&opts.all, "all", false, "Parse every curl command found in the input")
	flag.BoolVar(&opts.mask, "mask", false, "Hide sensitive header, cookie and credential values")
	flag.BoolVar(&opts.diff, "diff", false, "Print a diff between the input and the normalized command")
	flag.StringVar(
		&opts.color,
		"color",
		string(settings.Output.Color),
		"Color output: auto, always or never",
	)
	flag.StringVar(&opts.style, "style", settings.Output.Style, "Syntax highlighting style")
	flag.IntVar(&opts.width, "width", 0, "Truncate summary values to this many cells (0 = no limit)")
	flag.BoolVar(&opts.history, "history", settings.History.Enabled, "Record parsed requests in history")
	flag.BoolVar(
		&opts.historyList,
		"history-list",
		false,
		"List recorded requests, optionally filtered by the URL argument",
	)
	flag.StringVar(&opts.historyDel, "history-delete", "", "Remove the history entry with this ID")
	flag.StringVar(
		&traceOTEndpoint,
		"trace-otel-endpoint",
		traceOTEndpoint,
		"OTLP collector endpoint for parse spans",
	)
	flag.BoolVar(
		&traceOTInsecure,
		"trace-otel-insecure",
		traceOTInsecure,
		"Disable TLS for OTLP trace export",
	)
	flag.StringVar(
		&traceOTService,
		"trace-otel-service",
		traceOTService,
		"Override service.name resource attribute for exported spans",
	)
	flag.BoolVar(
		&opts.saveConfig,
		"save-settings",
		false,
		"Store -format, -color, -style and -history as defaults and exit",
	)
	flag.BoolVar(&showVersion, "version", false, "Show curlparse version")
	flag.Parse()

	if showVersion {
		fmt.Printf("curlparse %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		return 0
	}

	opts.arg = strings.TrimSpace(flag.Arg(0))

	telemetryCfg.Endpoint = strings.TrimSpace(traceOTEndpoint)
	telemetryCfg.Insecure = traceOTInsecure
	telemetryCfg.ServiceName = strings.TrimSpace(traceOTService)
	telemetryCfg.Version = version

	inst, err := telemetry.New(telemetryCfg)
	if err != nil {
		log.Printf("telemetry init error: %v", err)
		inst = telemetry.Noop()
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := inst.Shutdown(ctx); shutdownErr != nil {
			log.Printf("telemetry shutdown: %v", shutdownErr)
		}
	}()

	a := &app{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		readClipboard: clipboard.ReadAll,
		settings:      settings,
		settingsFile:  settingsFile,
		inst:          inst,
		now:           time.Now,
		version:       version,
	}
	if err := a.run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
