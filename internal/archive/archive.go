// Package archive opens the target ZIP, selects the member used as the
// password oracle and exposes the two verification probes: the legacy
// ZipCrypto path and the AES-capable library path.
package archive

import (
	"errors"
	"fmt"
	"os"

	"github.com/yeka/zip"
)

var (
	// ErrMalformed marks a file that opened but is not a valid ZIP container.
	ErrMalformed = errors.New("not a valid ZIP archive")
	// ErrNoEntries marks an archive with no non-directory members to test.
	ErrNoEntries = errors.New("archive contains no testable entries")
)

// Handle is an opened, structurally valid archive. It owns the underlying
// file for its lifetime and is used strictly sequentially.
type Handle struct {
	path string
	f    *os.File
	zr   *zip.Reader

	legacy     *legacyProbe
	legacyInit bool
}

func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("archive %s: %w", path, ErrMalformed)
	}
	return &Handle{path: path, f: f, zr: zr}, nil
}

func (h *Handle) Close() error { return h.f.Close() }

// Member is the single archive entry all candidates are verified against.
type Member struct {
	file *zip.File
}

func (m *Member) Name() string { return m.file.Name }

// Target selects the first entry in the archive's native listing order
// whose name does not denote a directory. The choice is deterministic and
// fixed for the whole run.
func (h *Handle) Target() (*Member, error) {
	for _, f := range h.zr.File {
		if !f.FileInfo().IsDir() {
			return &Member{file: f}, nil
		}
	}
	return nil, fmt.Errorf("archive %s: %w", h.path, ErrNoEntries)
}

// VerifyLegacy probes the member with the archive's built-in ZipCrypto
// scheme. A wrong password is a routine outcome, so every failure —
// including members this scheme cannot read at all (AES, stored,
// unencrypted) — collapses to false.
func (h *Handle) VerifyLegacy(m *Member, password []byte) bool {
	if !h.legacyInit {
		h.legacyInit = true
		// Unsupported layouts leave the probe nil; it then declines
		// every candidate and the AES probe carries the scan.
		h.legacy, _ = newLegacyProbe(h.f, m.file)
	}
	if h.legacy == nil {
		return false
	}
	return h.legacy.verify(password)
}
