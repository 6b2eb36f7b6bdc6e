package download

import (
	"net/url"
	"path"
	"strings"
)

// fallbackName is used when a URL carries no usable file name.
const fallbackName = "download"

// ParseFileName derives a file name from the last path segment of rawURL,
// ignoring query and fragment. It never returns an empty string.
func ParseFileName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fallbackName
	}

	name := path.Base(u.Path)
	switch name {
	case "", ".", "/", "..":
		return fallbackName
	}
	return name
}
