package models

import (
	"encoding/base64"
	"regexp"
)

var dataURLPrefix = regexp.MustCompile(`^data:[^;,]*;base64,`)

// DecodeInlineImage turns transient inline image data into payload bytes. A
// data-URL prefix is stripped and the remainder base64 decoded; input that
// does not decode is kept verbatim.
func DecodeInlineImage(data string) []byte {
	trimmed := dataURLPrefix.ReplaceAllString(data, "")
	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return decoded
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil {
		return decoded
	}
	return []byte(data)
}
