// Package imagedata converts between raw image bytes and the data URL handles
// the editor passes around.
package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotDataURL = errors.New("not a base64 data URL")
	ErrNotImage   = errors.New("content is not an image")
)

// Sniff detects the MIME type of data and reports whether it is an image.
func Sniff(data []byte) (string, bool) {
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return mtype.String(), true
		}
	}
	return mtype.String(), false
}

// Encode turns image bytes into a data URL handle.
func Encode(data []byte) (string, error) {
	mimeType, ok := Sniff(data)
	if !ok {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mimeType)
	}
	return EncodeAs(mimeType, data), nil
}

// EncodeAs builds a data URL with the given MIME type without sniffing.
func EncodeAs(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a data URL handle into its MIME type and payload.
func Decode(handle string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(handle, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL payload: %w", err)
	}
	if mimeType == "" {
		mimeType, _ = Sniff(data)
	}
	return mimeType, data, nil
}

// Extension returns the file extension (with dot) for mimeType, defaulting to
// ".png".
func Extension(mimeType string) string {
	if m := mimetype.Lookup(mimeType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".png"
}
