package markup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Decode converts raw document bytes to a UTF-8 string. A BOM or
// <meta charset> declaration selects the decoder; without one the bytes are
// read as UTF-8. Undecodable sequences are replaced with U+FFFD rather than
// rejected. It returns the encoding name it settled on.
func Decode(raw []byte) (string, string, error) {
	enc, name, certain := charset.DetermineEncoding(raw, "text/html")
	if enc == nil || !(certain || declaresCharset(raw)) {
		// Without a BOM or declaration DetermineEncoding guesses
		// windows-1252 for anything not entirely valid UTF-8, which would
		// garble every multi-byte rune around a single stray byte.
		return strings.ToValidUTF8(string(raw), "\uFFFD"), "utf-8", nil
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", name, fmt.Errorf("decode as %s: %w", name, err)
	}
	return strings.ToValidUTF8(string(decoded), "\uFFFD"), name, nil
}

// metaCharsetPattern finds a <meta charset> or http-equiv content-type
// declaration in the prescan window.
var metaCharsetPattern = regexp.MustCompile(`(?is)<meta\b[^>]*charset\s*=`)

// declaresCharset reports whether the first 1024 bytes carry a charset
// declaration, the same window DetermineEncoding prescans.
func declaresCharset(raw []byte) bool {
	if len(raw) > 1024 {
		raw = raw[:1024]
	}
	return metaCharsetPattern.Match(raw)
}
