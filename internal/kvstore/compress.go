package kvstore

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"io"
	"strings"
)

// compressedPrefix marks values that went through the size-reducing
// transform, so plain values written by older versions still read back.
const compressedPrefix = "gz:"

// encodeValue applies the reversible size-reducing transform. Any failure
// falls back to the raw text so data is never lost to the optimization.
func encodeValue(s string) string {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		return s
	}
	if err := zw.Close(); err != nil {
		return s
	}
	encoded := compressedPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
	if len(encoded) >= len(s) {
		// Transform did not actually shrink the value.
		return s
	}
	return encoded
}

// decodeValue reverses encodeValue. Unmarked or undecodable values are
// returned as-is rather than dropped.
func decodeValue(s string) string {
	if !strings.HasPrefix(s, compressedPrefix) {
		return s
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, compressedPrefix))
	if err != nil {
		return s
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return s
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return s
	}
	return string(out)
}
