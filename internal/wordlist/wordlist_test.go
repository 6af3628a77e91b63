package wordlist

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write wordlist: %v", err)
	}
	return path
}

func collect(t *testing.T, path string) []string {
	t.Helper()
	r, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	var got []string
	for r.Next() {
		got = append(got, r.Candidate())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	return got
}

func TestNextStripsLineEndingsAndSkipsEmpty(t *testing.T) {
	path := writeList(t, "admin\r\n\r\n123456\npassword\r\n\n")
	got := collect(t, path)
	want := []string{"admin", "123456", "password"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCountMatchesYieldedCandidates(t *testing.T) {
	path := writeList(t, "a\n\nb\n\n\nc\n")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	for r.Next() {
	}
	if r.Count() != 3 {
		t.Fatalf("Count = %d, want 3", r.Count())
	}
}

func TestInvalidUTF8BytesAreDropped(t *testing.T) {
	path := writeList(t, "p\xffw\nok\n")
	got := collect(t, path)
	if len(got) != 2 || got[0] != "pw" || got[1] != "ok" {
		t.Fatalf("candidates = %q, want [pw ok]", got)
	}
}

func TestLineOfOnlyInvalidBytesIsSkipped(t *testing.T) {
	path := writeList(t, "\xff\xfe\nreal\n")
	got := collect(t, path)
	if len(got) != 1 || got[0] != "real" {
		t.Fatalf("candidates = %q, want [real]", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing wordlist")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "wordlist") {
		t.Fatalf("err = %v, want message naming the wordlist", err)
	}
}

func TestLines(t *testing.T) {
	path := writeList(t, "a\n\nb\nc")
	n, err := Lines(path)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if n != 3 {
		t.Fatalf("Lines = %d, want 3", n)
	}
}
