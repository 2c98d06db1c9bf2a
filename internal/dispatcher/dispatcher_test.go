// Package dispatcher contains tests for worker coordination.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/careerscan/internal/crawler"
	"github.com/JakeFAU/careerscan/internal/worker"
)

// TestScanEmptyInput verifies an empty firm list yields an empty result set.
func TestScanEmptyInput(t *testing.T) {
	t.Parallel()

	d := New(worker.NewProcessor(&delayFetcher{}, zap.NewNop()), Config{Mode: crawler.ModeItemized}, zap.NewNop())
	require.Empty(t, d.Scan(context.Background(), nil))
}

// TestScanPreservesInputOrder ensures a slow firm does not reorder results.
func TestScanPreservesInputOrder(t *testing.T) {
	t.Parallel()

	fetcher := &delayFetcher{
		bodies: map[string]string{
			"https://a.test": `<h1>Alpha careers</h1>`,
			"https://b.test": `<h1>Bravo careers</h1>`,
			"https://c.test": `<h1>Charlie careers</h1>`,
		},
		delays: map[string]time.Duration{
			"https://b.test": 150 * time.Millisecond,
		},
	}
	d := New(worker.NewProcessor(fetcher, zap.NewNop()), Config{Workers: 3, Mode: crawler.ModeStatus}, zap.NewNop())

	results := d.Scan(context.Background(), []string{"https://a.test", "https://b.test", "https://c.test"})
	require.Len(t, results, 3)
	firms := make([]string, 0, len(results))
	for _, r := range results {
		firms = append(firms, r.Status.Firm)
		require.True(t, r.Status.Jobs, r.Status.Firm)
	}
	require.Equal(t, []string{"https://a.test", "https://b.test", "https://c.test"}, firms)
}

// TestScanItemizedOrder checks openings stay grouped by input position.
func TestScanItemizedOrder(t *testing.T) {
	t.Parallel()

	fetcher := &delayFetcher{
		bodies: map[string]string{
			"https://a.test": `<title>A</title><h2>A roles</h2>`,
			"https://b.test": `<h2>B roles</h2>`,
		},
		delays: map[string]time.Duration{
			"https://a.test": 100 * time.Millisecond,
		},
	}
	d := New(worker.NewProcessor(fetcher, zap.NewNop()), Config{Workers: 2}, zap.NewNop())

	results := d.Scan(context.Background(), []string{"https://a.test", "https://down.test", "https://b.test"})
	require.Equal(t, "A roles", results[0].Openings[0].Title)
	require.Empty(t, results[1].Openings)
	require.Equal(t, "B roles", results[2].Openings[0].Title)
}

// TestScanBoundsConcurrency verifies no more than Workers firms run at once.
func TestScanBoundsConcurrency(t *testing.T) {
	t.Parallel()

	fetcher := &delayFetcher{defaultDelay: 20 * time.Millisecond}
	d := New(worker.NewProcessor(fetcher, zap.NewNop()), Config{Workers: 3, Mode: crawler.ModeStatus}, zap.NewNop())

	firms := make([]string, 12)
	for i := range firms {
		firms[i] = fmt.Sprintf("https://firm-%d.test", i)
	}
	results := d.Scan(context.Background(), firms)

	require.Len(t, results, len(firms))
	require.LessOrEqual(t, fetcher.peak.Load(), int32(3))
	require.Equal(t, int32(len(firms)), fetcher.total.Load(), "each firm dispatched exactly once")
	for i, r := range results {
		require.Equal(t, firms[i], r.Status.Firm)
		require.Equal(t, crawler.NoteUnreachable, r.Status.Note)
	}
}

// TestScanCanceledBeforeStart leaves every firm with the skipped placeholder.
func TestScanCanceledBeforeStart(t *testing.T) {
	t.Parallel()

	d := New(worker.NewProcessor(&delayFetcher{}, zap.NewNop()), Config{Mode: crawler.ModeStatus}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := d.Scan(ctx, []string{"https://a.test", "https://b.test"})
	require.Len(t, results, 2)
	for _, r := range results {
		require.Equal(t, NoteSkipped, r.Status.Note)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	d := New(worker.NewProcessor(&delayFetcher{}, nil), Config{}, nil)
	require.Equal(t, DefaultWorkers, d.cfg.Workers)
	require.Equal(t, crawler.ModeItemized, d.cfg.Mode)
}

// delayFetcher serves canned bodies after optional per-URL delays and tracks
// how many fetches are in flight.
type delayFetcher struct {
	bodies       map[string]string
	delays       map[string]time.Duration
	defaultDelay time.Duration

	mu       sync.Mutex
	inFlight int32
	peak     atomic.Int32
	total    atomic.Int32
}

func (f *delayFetcher) Fetch(ctx context.Context, req crawler.FetchRequest) (crawler.FetchResponse, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.peak.Load() {
		f.peak.Store(f.inFlight)
	}
	f.mu.Unlock()
	f.total.Add(1)
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	delay := f.defaultDelay
	if d, ok := f.delays[req.URL]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return crawler.FetchResponse{}, ctx.Err()
		}
	}

	body, ok := f.bodies[req.URL]
	if !ok {
		return crawler.FetchResponse{}, errors.New("unreachable")
	}
	return crawler.FetchResponse{URL: req.URL, StatusCode: 200, Body: []byte(body)}, nil
}
