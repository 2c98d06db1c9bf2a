package crawler

import (
	"net/http"
	"time"
)

// Mode selects how a firm is processed and reported.
type Mode string

// Report modes understood by the processor and the reporter.
const (
	ModeStatus   Mode = "status"
	ModeItemized Mode = "itemized"
)

// ParseMode converts a raw string into a Mode, reporting whether it is known.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeStatus:
		return ModeStatus, true
	case ModeItemized:
		return ModeItemized, true
	default:
		return "", false
	}
}

// NoteUnreachable is reported in status mode when a firm's root page cannot be fetched.
const NoteUnreachable = "could not reach site"

// NoteNoOpenings is the default status note when no candidate page mentions jobs.
const NoteNoOpenings = "no openings found"

// Opening is one extracted job posting.
type Opening struct {
	FirmURL string `json:"firm_url"`
	Title   string `json:"opening_title"`
	Link    string `json:"job_link"`
}

// FirmResult summarises a firm in status mode.
type FirmResult struct {
	Firm  string   `json:"firm"`
	Jobs  bool     `json:"jobs"`
	Pages []string `json:"pages,omitempty"`
	Note  string   `json:"note,omitempty"`
}

// Summary returns the note shown for a firm without openings.
func (r FirmResult) Summary() string {
	if r.Note != "" {
		return r.Note
	}
	return NoteNoOpenings
}

// ScanResult is what one firm contributes to a scan, depending on the mode.
type ScanResult struct {
	Status   FirmResult
	Openings []Opening
}

// Task is a single queued firm, tagged with its position in the input list.
type Task struct {
	Index   int
	FirmURL string
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Page is a successfully fetched document. Callers receive it together with an
// ok flag; a false flag means the page was unreachable for any reason.
type Page struct {
	URL  string
	Body []byte
}
