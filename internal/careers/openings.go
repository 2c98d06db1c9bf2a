package careers

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// titlePattern matches the role nouns that mark an anchor as a job posting.
var titlePattern = regexp.MustCompile(`(?i)\b(architect|designer|manager|coordinator|intern|assistant|director|drafter)\b`)

// minTitleRunes is exclusive: anchor text must be longer than this.
const minTitleRunes = 4

// Posting is an opening found on a single candidate page, before it is
// attributed to a firm.
type Posting struct {
	Title string
	Link  string
}

// ParseOpenings extracts postings from a candidate page. Anchors whose text
// names a role are returned first; when there are none, the page's first h1 or
// h2 (or its title) becomes a single posting linking back to pageURL.
func ParseOpenings(pageURL string, body []byte) []Posting {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	postings := anchorPostings(base, doc)
	if len(postings) > 0 {
		return postings
	}
	if guess := headingGuess(doc); guess != "" {
		return []Posting{{Title: guess, Link: pageURL}}
	}
	return nil
}

// IsJobTitle reports whether text looks like a job title.
func IsJobTitle(text string) bool {
	return utf8.RuneCountInString(text) > minTitleRunes && titlePattern.MatchString(text)
}

func anchorPostings(base *url.URL, doc *goquery.Document) []Posting {
	var postings []Posting
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if !IsJobTitle(text) {
			return
		}
		href, _ := a.Attr("href")
		link, ok := resolve(base, href)
		if !ok {
			return
		}
		postings = append(postings, Posting{Title: text, Link: link})
	})
	return postings
}

func headingGuess(doc *goquery.Document) string {
	if heading := doc.Find("h1, h2").First(); heading.Length() > 0 {
		return collapseSpace(heading.Text())
	}
	return collapseSpace(doc.Find("title").First().Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
