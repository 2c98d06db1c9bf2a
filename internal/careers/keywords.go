package careers

import (
	"bytes"
	"strings"
)

// keywords is the job vocabulary matched against link text, hrefs and bodies.
var keywords = [...]string{
	"career",
	"careers",
	"job",
	"jobs",
	"vacancy",
	"vacancies",
	"join us",
	"work with us",
	"opportunities",
	"employment",
}

// Keywords returns a copy of the job vocabulary.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords[:])
	return out
}

// MatchesKeyword reports whether s contains any job keyword, ignoring case.
// Matching is plain substring containment, so "Careers" and "/jobs-board"
// both qualify.
func MatchesKeyword(s string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// BodyMentionsJobs reports whether a raw page body contains any job keyword.
// The whole document is scanned, markup included.
func BodyMentionsJobs(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	lower := bytes.ToLower(body)
	for _, kw := range keywords {
		if bytes.Contains(lower, []byte(kw)) {
			return true
		}
	}
	return false
}
