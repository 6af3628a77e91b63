package archive

import (
	"fmt"
	"io"

	"github.com/yeka/zip"
)

// AESProbe verifies candidates through the AES-capable container reader.
// It re-opens the archive with its own reader because the legacy probe
// cannot read AES-variant payloads.
type AESProbe struct {
	rc   *zip.ReadCloser
	file *zip.File
}

// NewAESProbe is a try-acquire factory: an error means the capability is
// unavailable for this run, which narrows the capability set but is never
// fatal to the scan.
func NewAESProbe(path, member string) (*AESProbe, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	for _, f := range rc.File {
		if f.Name == member {
			return &AESProbe{rc: rc, file: f}, nil
		}
	}
	rc.Close()
	return nil, fmt.Errorf("member %q not visible to AES reader", member)
}

// Verify reports whether the password decrypts the member. The member is
// drained fully so the reader's CRC/HMAC check runs; any failure along the
// way is an ordinary non-match.
func (p *AESProbe) Verify(password []byte) bool {
	p.file.SetPassword(string(password))
	r, err := p.file.Open()
	if err != nil {
		return false
	}
	_, err = io.Copy(io.Discard, r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	return err == nil
}

func (p *AESProbe) Close() error { return p.rc.Close() }
