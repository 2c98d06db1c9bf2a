package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/JakeFAU/careerscan/internal/crawler"
)

var errUnreachable = errors.New("unreachable")

// siteFetcher serves canned bodies; unknown URLs fail.
type siteFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func newSiteFetcher(pages map[string]string) *siteFetcher {
	return &siteFetcher{pages: pages}
}

func (s *siteFetcher) Fetch(_ context.Context, req crawler.FetchRequest) (crawler.FetchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req.URL)
	body, ok := s.pages[req.URL]
	if !ok {
		return crawler.FetchResponse{}, errUnreachable
	}
	return crawler.FetchResponse{URL: req.URL, StatusCode: 200, Body: []byte(body)}, nil
}

func (s *siteFetcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// MockFetcher is a mock implementation of the Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, req crawler.FetchRequest) (crawler.FetchResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(crawler.FetchResponse), args.Error(1)
}
