// Package wordlist streams candidate passwords from a newline-delimited
// file, one non-empty line at a time.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Candidate lines longer than this abort the scan with an error.
const maxLineBytes = 1 << 20

// Reader yields candidates in file order. It is consumed once; re-reading
// the list means opening a fresh Reader.
type Reader struct {
	f     *os.File
	sc    *bufio.Scanner
	cur   string
	count int64
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist %s: %w", path, err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Reader{f: f, sc: sc}, nil
}

// Next advances to the next non-empty candidate. Trailing CR/LF is
// stripped and invalid UTF-8 byte sequences are dropped rather than
// treated as fatal. Lines that end up empty are skipped without counting.
func (r *Reader) Next() bool {
	for r.sc.Scan() {
		line := strings.TrimRight(r.sc.Text(), "\r\n")
		line = strings.ToValidUTF8(line, "")
		if line == "" {
			continue
		}
		r.cur = line
		r.count++
		return true
	}
	return false
}

// Candidate returns the current candidate, valid until the next call to Next.
func (r *Reader) Candidate() string { return r.cur }

// Count returns the number of candidates yielded so far.
func (r *Reader) Count() int64 { return r.count }

// Err reports the first read failure, if any. A clean end of file is nil.
func (r *Reader) Err() error {
	if err := r.sc.Err(); err != nil {
		return fmt.Errorf("wordlist %s: %w", r.f.Name(), err)
	}
	return nil
}

func (r *Reader) Close() error { return r.f.Close() }

// Lines counts the candidates in the list without keeping any of them.
// Used to size progress reporting; the scan itself re-opens the file.
func Lines(path string) (int64, error) {
	r, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	for r.Next() {
	}
	if err := r.Err(); err != nil {
		return 0, err
	}
	return r.Count(), nil
}
