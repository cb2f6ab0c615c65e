package domain

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"io"
	"net/url"
)

// PreviewMarker is appended to truncated previews
const PreviewMarker = "..."

// Encode converts note text into the compact payload stored in settings.
// The text is escaped, DEFLATE-compressed and base64-encoded.
func Encode(plain string) string {
	escaped := url.QueryEscape(plain)

	var buf bytes.Buffer
	// BestCompression never fails for a valid level, the writer only errors on
	// the underlying io.Writer which is an in-memory buffer here.
	w, _ := flate.NewWriter(&buf, flate.BestCompression)
	_, _ = w.Write([]byte(escaped))
	_ = w.Close()

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// Decode reverses Encode. Payloads written by the editor extension in its
// lz-string form are also accepted and stay as they are until the note is
// edited. Anything else yields a *CodecError.
func Decode(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		if !isLegacyPayload(encoded) {
			return "", &CodecError{Stage: "base64", Err: err}
		}
		plain, lzErr := decompressUTF16(encoded)
		if lzErr != nil {
			return "", &CodecError{Stage: "lz-string", Err: lzErr}
		}
		return plain, nil
	}

	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()

	escaped, err := io.ReadAll(r)
	if err != nil {
		return "", &CodecError{Stage: "inflate", Err: err}
	}

	plain, err := url.QueryUnescape(string(escaped))
	if err != nil {
		return "", &CodecError{Stage: "unescape", Err: err}
	}
	return plain, nil
}

// Preview decodes the payload and truncates it to at most n runes,
// appending PreviewMarker when something was cut. Only for display.
func Preview(encoded string, n int) (string, error) {
	plain, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	return Truncate(plain, n), nil
}

// Truncate shortens s to at most n runes plus PreviewMarker
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + PreviewMarker
}
