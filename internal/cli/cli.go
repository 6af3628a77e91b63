// Package cli parses the command line and maps scan outcomes onto the
// process exit-code contract: 0 found, 1 exhausted, 2 error.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"

	"brutezip/internal/crack"
	"brutezip/internal/wordlist"
)

const (
	ExitFound    = 0
	ExitNotFound = 1
	ExitError    = 2
)

const defaultWordlist = "TOP500.txt"

// Debug progress cadence, in candidates.
const progressEvery = 100

// Invocation is the canonicalized description of a run.
type Invocation struct {
	Archive  string
	Wordlist string
	Verbose  bool
}

func newFlagSet(inv *Invocation) *flag.FlagSet {
	fs := flag.NewFlagSet("brutezip", flag.ContinueOnError)
	fs.StringVar(&inv.Archive, "z", "", "path to the target .zip archive (required)")
	fs.StringVar(&inv.Wordlist, "w", defaultWordlist, "path to the wordlist")
	fs.BoolVar(&inv.Verbose, "v", false, "print progress and diagnostics to stderr")
	return fs
}

// ParseInvocation parses args (excluding argv[0]). Errors are returned,
// not printed; flag.ErrHelp passes through for the caller to handle.
func ParseInvocation(args []string) (Invocation, error) {
	var inv Invocation
	fs := newFlagSet(&inv)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return Invocation{}, err
	}
	if fs.NArg() != 0 {
		return Invocation{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if inv.Archive == "" {
		return Invocation{}, errors.New("-z is required")
	}
	return inv, nil
}

func usage(w io.Writer) {
	fmt.Fprint(w, "Usage: brutezip -z <archive.zip> [-w wordlist] [-v]\n\nFlags:\n")
	var inv Invocation
	fs := newFlagSet(&inv)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// Run executes a full invocation. On success the discovered password is
// the only thing written to stdout; every diagnostic goes to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	inv, err := ParseInvocation(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout)
			return ExitFound
		}
		fmt.Fprintln(stderr, err)
		usage(stderr)
		return ExitError
	}

	level := slog.LevelInfo
	if inv.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var bar *pb.ProgressBar
	if inv.Verbose {
		// Pre-count is best effort; a broken wordlist surfaces as the
		// scan's own error below.
		if total, err := wordlist.Lines(inv.Wordlist); err == nil {
			bar = pb.New64(total).SetWriter(stderr).Start()
		}
	}

	start := time.Now()
	opts := crack.Options{
		Logger: logger,
		Progress: func(tried int64) {
			if bar != nil {
				bar.SetCurrent(tried)
			}
			if tried%progressEvery == 0 {
				logger.Debug("progress", "tried", tried, "elapsed", time.Since(start).Round(100*time.Millisecond))
			}
		},
	}

	outcome, err := crack.Run(inv.Archive, inv.Wordlist, opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	if !outcome.Found {
		logger.Debug("wordlist exhausted", "tried", outcome.Tried)
		return ExitNotFound
	}
	logger.Debug("password found", "tried", outcome.Tried, "elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(stdout, outcome.Password)
	return ExitFound
}
