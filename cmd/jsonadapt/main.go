package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/reoring/jsonadapt"
	_ "github.com/reoring/jsonadapt/backend/all"
	"github.com/reoring/jsonadapt/i18n"
)

// Exit codes follow cmp(1): 0 equal/passing, 1 different/failing, 2 trouble.
const (
	exitOK      = 0
	exitDiffers = 1
	exitError   = 2
)

// errDiffers is returned by commands whose comparison came out negative.
var errDiffers = errors.New("documents differ")

// CLI defines the command-line interface.
type CLI struct {
	LogLevel       string `help:"Log level (debug, info, warn, error)." default:"warn" enum:"debug,info,warn,error"`
	Lang           string `help:"Message language." default:"en" enum:"en,ja"`
	NoColor        bool   `help:"Disable colored output."`
	MaxBytes       int64  `help:"Reject inputs larger than this many bytes (0 = unlimited)."`
	MaxDepth       int    `help:"Reject JSON nested deeper than this (0 = unlimited)."`
	OnDuplicateKey string `help:"Duplicate JSON keys: ignore, warn or error." default:"ignore" enum:"ignore,warn,error"`

	Backends BackendsCmd `cmd:"" help:"List registered backends and their traits."`
	Compare  CompareCmd  `cmd:"" help:"Compare two documents, possibly parsed by different backends."`
	Matrix   MatrixCmd   `cmd:"" help:"Check a fixture manifest against every backend pair."`
}

// Globals is bound into every command's Run method.
type Globals struct {
	Loader *jsonadapt.Loader
	Logger *slog.Logger
	Out    io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jsonadapt"),
		kong.Description("Compare JSON documents across parsing backends."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	i18n.SetLanguage(cli.Lang)
	color.NoColor = cli.NoColor || !isTerminal(stdout)

	g := &Globals{
		Loader: &jsonadapt.Loader{
			Logger:         logger,
			MaxBytes:       cli.MaxBytes,
			MaxDepth:       cli.MaxDepth,
			OnDuplicateKey: severity(cli.OnDuplicateKey),
		},
		Logger: logger,
		Out:    stdout,
	}
	if err := kctx.Run(g); err != nil {
		if errors.Is(err, errDiffers) {
			return exitDiffers
		}
		fmt.Fprintln(stderr, describe(err))
		return exitError
	}
	return exitOK
}

func severity(s string) jsonadapt.Severity {
	switch s {
	case "warn":
		return jsonadapt.Warn
	case "error":
		return jsonadapt.Error
	default:
		return jsonadapt.Ignore
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// describe renders load failures with a localized code message.
func describe(err error) string {
	le, ok := jsonadapt.AsLoadError(err)
	if !ok {
		return err.Error()
	}
	msg := i18n.T(le.Code, map[string]string{"pointer": le.Pointer})
	src := le.Path
	if src == "" {
		src = "<input>"
	}
	if le.Cause != nil {
		return fmt.Sprintf("%s: %s [%s]: %v", src, msg, le.Kind, le.Cause)
	}
	return fmt.Sprintf("%s: %s [%s]", src, msg, le.Kind)
}
