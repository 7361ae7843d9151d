package shared

import (
	"net/url"
	"sort"
	"strings"
)

// SignedRequest is a fully prepared wire request: final URL, headers, and the
// exact body bytes the signature was computed over.
type SignedRequest struct {
	Venue   string
	Route   string
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
	Weight  int
}

// EncodeQuery serializes params as an URL-encoded query string with keys in
// ascending order. The same bytes must be both signed and transmitted, so the
// ordering is fixed here and nowhere else.
func EncodeQuery(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range SortedKeys(params) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// ImplodePath substitutes {placeholder} segments in path from params and
// returns the resolved path plus the remaining, unconsumed params.
func ImplodePath(path string, params map[string]string) (string, map[string]string) {
	rest := make(map[string]string, len(params))
	for k, v := range params {
		rest[k] = v
	}
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			break
		}
		end += start
		name := path[start+1 : end]
		value := rest[name]
		delete(rest, name)
		path = path[:start] + value + path[end+1:]
	}
	return path, rest
}

// SortedKeys returns the keys of params in ascending order. Venue canonical
// strings that embed raw key=value pairs rely on this ordering.
func SortedKeys(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
