package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/fsum/internal/fsum"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(options fsum.Options, progress string, stdout, stderr io.Writer) error {
	log := logrus.New()
	log.SetOutput(stderr)

	if options.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	options.Logger = log

	var enableProgress bool

	switch progress {
	case ProgressAlways:
		enableProgress = true
	case ProgressAuto:
		enableProgress = options.Output != "json" && !options.Debug && isTerminal(stderr)
	}

	// Simple progress callback that prints directly to stderr
	var progressHook func(files int64, bytes uint64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files int64, bytes uint64) {
			msg := fmt.Sprintf("Scanning… %d files, %s", files, humanize.IBytes(bytes))
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := fsum.Run(options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch options.Output {
	case "json":
		return PrintJSON(result, stdout)
	case "plain":
		return PrintPlain(result, stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
