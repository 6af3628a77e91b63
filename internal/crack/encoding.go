package crack

import "golang.org/x/text/encoding/charmap"

// passwordBytes returns the byte renditions of a candidate to verify, in
// fixed priority order: UTF-8 first, then Latin-1. The true password's
// encoding is unknown, and the two produce different bytes for anything
// outside ASCII. A candidate the Latin-1 encoder cannot represent simply
// loses that attempt.
func passwordBytes(candidate string) [][]byte {
	attempts := [][]byte{[]byte(candidate)}
	if b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(candidate)); err == nil {
		attempts = append(attempts, b)
	}
	return attempts
}
