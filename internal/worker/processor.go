// Package worker implements the per-firm scan pipeline and the loop that feeds
// it from the task queue.
package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/careerscan/internal/careers"
	"github.com/JakeFAU/careerscan/internal/crawler"
	"github.com/JakeFAU/careerscan/internal/metrics"
)

// Firm outcomes recorded in metrics.
const (
	outcomeUnreachable = "unreachable"
	outcomeFound       = "found"
	outcomeNone        = "none"
)

// Processor runs fetch → locate → extract for one firm. It holds no per-firm
// state, so one Processor can serve every worker.
type Processor struct {
	fetcher crawler.Fetcher
	logger  *zap.Logger
}

// NewProcessor constructs a Processor.
func NewProcessor(fetcher crawler.Fetcher, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Process scans firm in the given mode.
func (p *Processor) Process(ctx context.Context, mode crawler.Mode, firm string) crawler.ScanResult {
	if mode == crawler.ModeStatus {
		return crawler.ScanResult{Status: p.Status(ctx, firm)}
	}
	return crawler.ScanResult{Openings: p.Itemize(ctx, firm)}
}

// Status reports whether any candidate page of the firm mentions jobs.
func (p *Processor) Status(ctx context.Context, firm string) crawler.FirmResult {
	logger := p.logger.With(zap.String("firm", firm))
	root, ok := p.fetchPage(ctx, firm)
	if !ok {
		metrics.ObserveFirm(string(crawler.ModeStatus), outcomeUnreachable)
		logger.Info("root page unreachable")
		return crawler.FirmResult{Firm: firm, Note: crawler.NoteUnreachable}
	}

	var pages []string
	for _, candidate := range p.candidatePages(firm, root) {
		page, ok := p.fetchPage(ctx, candidate)
		if !ok || !careers.BodyMentionsJobs(page.Body) {
			continue
		}
		pages = append(pages, candidate)
	}

	result := crawler.FirmResult{Firm: firm, Jobs: len(pages) > 0, Pages: pages}
	if result.Jobs {
		metrics.ObserveFirm(string(crawler.ModeStatus), outcomeFound)
	} else {
		metrics.ObserveFirm(string(crawler.ModeStatus), outcomeNone)
	}
	logger.Debug("firm scanned", zap.Bool("jobs", result.Jobs), zap.Strings("pages", pages))
	return result
}

// Itemize extracts every opening from the firm's candidate pages. An
// unreachable root yields no openings.
func (p *Processor) Itemize(ctx context.Context, firm string) []crawler.Opening {
	logger := p.logger.With(zap.String("firm", firm))
	root, ok := p.fetchPage(ctx, firm)
	if !ok {
		metrics.ObserveFirm(string(crawler.ModeItemized), outcomeUnreachable)
		logger.Info("root page unreachable")
		return nil
	}

	var openings []crawler.Opening
	for _, candidate := range p.candidatePages(firm, root) {
		for _, posting := range p.extractOpenings(ctx, candidate) {
			openings = append(openings, crawler.Opening{
				FirmURL: firm,
				Title:   posting.Title,
				Link:    posting.Link,
			})
		}
	}

	if len(openings) > 0 {
		metrics.ObserveFirm(string(crawler.ModeItemized), outcomeFound)
		metrics.AddOpenings(len(openings))
	} else {
		metrics.ObserveFirm(string(crawler.ModeItemized), outcomeNone)
	}
	logger.Debug("firm scanned", zap.Int("openings", len(openings)))
	return openings
}

// candidatePages lists the career pages linked from the root, or the root
// itself when none are linked.
func (p *Processor) candidatePages(firm string, root crawler.Page) []string {
	links := careers.LocateCareerPages(firm, root.Body)
	if len(links) == 0 {
		return []string{firm}
	}
	return links
}

// extractOpenings fetches a candidate page and parses its postings.
func (p *Processor) extractOpenings(ctx context.Context, pageURL string) []careers.Posting {
	page, ok := p.fetchPage(ctx, pageURL)
	if !ok {
		return nil
	}
	return careers.ParseOpenings(pageURL, page.Body)
}

// fetchPage collapses every fetch failure, and empty bodies, into absence.
func (p *Processor) fetchPage(ctx context.Context, url string) (crawler.Page, bool) {
	resp, err := p.fetcher.Fetch(ctx, crawler.FetchRequest{URL: url})
	if err != nil {
		p.logger.Debug("page unreachable", zap.String("url", url), zap.Error(err))
		return crawler.Page{}, false
	}
	if len(resp.Body) == 0 {
		p.logger.Debug("page empty", zap.String("url", url))
		return crawler.Page{}, false
	}
	return crawler.Page{URL: url, Body: resp.Body}, true
}
