// package magnet builds and inspects magnet URIs.
//
// Link construction is a pure function of its inputs so the same hash and
// display name always produce the same URI.
package magnet

import (
	"regexp"
	"strings"
)

// trackers is the fixed announce list appended to every built link.
var trackers = []string{
	"udp://open.demonii.com:1337/announce",
	"udp://tracker.openbittorrent.com:80",
	"udp://tracker.coppersurfer.tk:6969",
	"udp://glotorrents.pw:6969/announce",
	"udp://tracker.opentrackr.org:1337/announce",
	"udp://torrent.gresille.org:80/announce",
	"udp://p4p.arenabg.com:1337",
	"udp://tracker.leechers-paradise.org:6969",
}

var hashPattern = regexp.MustCompile(`urn:btih:([a-fA-F0-9]+)`)

// Build constructs a magnet URI from an info hash and a display name.
// The hash is lower-cased and spaces in the name are replaced with '+'.
func Build(hash, displayName string) string {
	var b strings.Builder
	b.WriteString("magnet:?xt=urn:btih:")
	b.WriteString(strings.ToLower(hash))
	b.WriteString("&dn=")
	b.WriteString(strings.ReplaceAll(displayName, " ", "+"))

	for _, tr := range trackers {
		b.WriteString("&tr=")
		b.WriteString(tr)
	}

	return b.String()
}

// ExtractHash pulls the info hash out of a magnet URI, lower-cased.
// Returns false when the URI carries no urn:btih identifier.
func ExtractHash(uri string) (string, bool) {
	m := hashPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}
