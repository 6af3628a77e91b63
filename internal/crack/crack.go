// Package crack drives the scan: candidates from the wordlist are tried
// against the archive's verification probes until the first match or
// exhaustion.
package crack

import (
	"io"
	"log/slog"

	"brutezip/internal/archive"
	"brutezip/internal/wordlist"
)

// Outcome is the terminal result of a run, produced exactly once.
type Outcome struct {
	Password string
	Found    bool
	Tried    int64
}

type Options struct {
	// Logger receives Debug-level diagnostics. Nil discards them.
	Logger *slog.Logger
	// Progress, if set, is called once per candidate with the running
	// count. Observational only; it must not affect the scan.
	Progress func(tried int64)
}

// Run opens the archive and the wordlist and scans for the password.
// Structural failures (missing or malformed archive, no testable entries,
// missing or unreadable wordlist) are returned as errors; a wrong
// candidate never is.
func Run(archivePath, wordlistPath string, opts Options) (Outcome, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h, err := archive.Open(archivePath)
	if err != nil {
		return Outcome{}, err
	}
	defer h.Close()

	member, err := h.Target()
	if err != nil {
		return Outcome{}, err
	}
	log.Debug("selected target member", "member", member.Name())

	// Best-effort acquisition of the AES-capable reader. Absence only
	// narrows the capability set.
	aes, err := archive.NewAESProbe(archivePath, member.Name())
	if err != nil {
		log.Debug("AES fallback disabled", "reason", err)
	} else {
		defer aes.Close()
		log.Debug("AES fallback enabled")
	}

	words, err := wordlist.Open(wordlistPath)
	if err != nil {
		return Outcome{}, err
	}
	defer words.Close()

	for words.Next() {
		candidate := words.Candidate()
		for _, pw := range passwordBytes(candidate) {
			if h.VerifyLegacy(member, pw) {
				return Outcome{Password: candidate, Found: true, Tried: words.Count()}, nil
			}
			if aes != nil && aes.Verify(pw) {
				return Outcome{Password: candidate, Found: true, Tried: words.Count()}, nil
			}
		}
		if opts.Progress != nil {
			opts.Progress(words.Count())
		}
	}
	if err := words.Err(); err != nil {
		return Outcome{}, err
	}
	return Outcome{Tried: words.Count()}, nil
}
