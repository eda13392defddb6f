package qrcode

import (
	"encoding/hex"
	"errors"
	"net/url"
	"regexp"
	"strings"
)

const (
	// Prefix namespaces every QR code object in the bucket.
	Prefix = "qr_codes/"
	// Extension is appended to every derived key.
	Extension = ".png"
)

// ErrMissingData is returned when there is nothing to encode.
var ErrMissingData = errors.New("missing data")

var (
	nonSlugPath = regexp.MustCompile(`[^a-z0-9]+`)
	nonSlugHost = regexp.MustCompile(`[^a-z0-9.]+`)
	dotRuns     = regexp.MustCompile(`\.{2,}`)
)

// DeriveKey maps data to its object key. Absolute URLs become a readable
// slug of host and path ("https://example.com/a/b" -> "qr_codes/example.com-a-b.png");
// everything else, and URLs whose slug comes out empty, is hex encoded.
//
// Slugs are lossy: distinct URLs can share a key and the later upload
// replaces the earlier one. Hex keys are unique per input.
func DeriveKey(data string) (string, error) {
	if data == "" {
		return "", ErrMissingData
	}

	base := urlSlug(data)
	if base == "" {
		base = hex.EncodeToString([]byte(data))
	}
	return Prefix + base + Extension, nil
}

// urlSlug returns "" when data is not an absolute URL.
func urlSlug(data string) string {
	u, err := url.Parse(data)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = nonSlugHost.ReplaceAllString(host, "-")
	host = dotRuns.ReplaceAllString(host, ".")
	host = strings.Trim(host, "-.")

	path := nonSlugPath.ReplaceAllString(strings.ToLower(u.Path), "-")
	path = strings.Trim(path, "-")

	switch {
	case host == "":
		return path
	case path == "":
		return host
	default:
		return host + "-" + path
	}
}
