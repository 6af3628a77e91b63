package archive

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/yeka/zip"
)

var crcTab = crc32.MakeTable(crc32.IEEE)

// updateKeys advances the ZipCrypto key state by one plaintext byte.
func updateKeys(k0, k1, k2 uint32, b byte) (uint32, uint32, uint32) {
	k0 = crcTab[(k0^uint32(b))&0xff] ^ (k0 >> 8)
	k1 = (k1+(k0&0xff))*0x08088405 + 1
	k2 = crcTab[(k2^(k1>>24))&0xff] ^ (k2 >> 8)
	return k0, k1, k2
}

// legacyDecryptor decrypts ZipCrypto-encrypted data using a running key
// state. Implements io.Reader so it can feed directly into compress/flate.
type legacyDecryptor struct {
	src        []byte
	pos        int
	k0, k1, k2 uint32
}

func (d *legacyDecryptor) Read(p []byte) (int, error) {
	avail := len(d.src) - d.pos
	if avail <= 0 {
		return 0, io.EOF
	}
	n := len(p)
	if n > avail {
		n = avail
	}
	for i := 0; i < n; i++ {
		temp := d.k2 | 2
		p[i] = d.src[d.pos] ^ byte((temp*(temp^1))>>8)
		d.k0, d.k1, d.k2 = updateKeys(d.k0, d.k1, d.k2, p[i])
		d.pos++
	}
	return n, nil
}

func (d *legacyDecryptor) reset(k0, k1, k2 uint32) {
	d.pos = 0
	d.k0, d.k1, d.k2 = k0, k1, k2
}

// legacyProbe verifies candidates against a ZipCrypto-encrypted, deflated
// member. The encrypted payload is read once through the open handle;
// per-candidate work is the key schedule, the 12-byte header check and,
// when the check byte matches, a full decrypt + inflate + CRC confirm.
type legacyProbe struct {
	encHeader   [12]byte
	crcCheck    byte
	timeCheck   byte
	compData    []byte
	expectedCRC uint32

	dec *legacyDecryptor
	fr  io.ReadCloser
	rst flate.Resetter
	crc hash.Hash32
	buf []byte
}

func newLegacyProbe(r io.ReaderAt, f *zip.File) (*legacyProbe, error) {
	if f.Flags&1 == 0 {
		return nil, errors.New("member is not encrypted")
	}
	if f.Method != zip.Deflate {
		return nil, fmt.Errorf("unsupported method %d for ZipCrypto probe", f.Method)
	}
	size := int64(f.CompressedSize64)
	if size <= 12 {
		return nil, errors.New("member too small for an encryption header")
	}
	off, err := f.DataOffset()
	if err != nil {
		return nil, err
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(r, off, size), raw); err != nil {
		return nil, err
	}

	p := &legacyProbe{
		// With a data descriptor the header check byte comes from the
		// mod time instead of the CRC, so accept either.
		crcCheck:    byte(f.CRC32 >> 24),
		timeCheck:   byte(f.ModifiedTime >> 8),
		compData:    raw[12:],
		expectedCRC: f.CRC32,
	}
	copy(p.encHeader[:], raw[:12])
	p.dec = &legacyDecryptor{src: p.compData}
	fr := flate.NewReader(bytes.NewReader(nil)) // dummy init, reset per candidate
	p.fr = fr
	p.rst = fr.(flate.Resetter)
	p.crc = crc32.NewIEEE()
	p.buf = make([]byte, 32*1024)
	return p, nil
}

func (p *legacyProbe) verify(password []byte) bool {
	k0, k1, k2 := uint32(0x12345678), uint32(0x23456789), uint32(0x34567890)
	for _, b := range password {
		k0, k1, k2 = updateKeys(k0, k1, k2, b)
	}

	var last byte
	for _, c := range p.encHeader {
		temp := k2 | 2
		last = c ^ byte((temp*(temp^1))>>8)
		k0, k1, k2 = updateKeys(k0, k1, k2, last)
	}
	if last != p.crcCheck && last != p.timeCheck {
		return false
	}

	// Header check passed; confirm by decrypting and decompressing the
	// whole payload against the recorded CRC.
	p.dec.reset(k0, k1, k2)
	if err := p.rst.Reset(p.dec, nil); err != nil {
		return false
	}
	p.crc.Reset()
	if _, err := io.CopyBuffer(p.crc, p.fr, p.buf); err != nil {
		return false
	}
	return p.crc.Sum32() == p.expectedCRC
}
