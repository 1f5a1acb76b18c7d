package fake

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher is a mock text fetcher for testing purposes.
type Fetcher struct {
	mu sync.Mutex

	PagesToReturn map[string]string
	ErrToReturn   error
	calls         []string
}

// NewFetcher creates a new fake fetcher serving pages by URL.
func NewFetcher(pages map[string]string) *Fetcher {
	if pages == nil {
		pages = make(map[string]string)
	}
	return &Fetcher{PagesToReturn: pages}
}

// FetchText returns the pre-configured page, or an error when none is set.
func (f *Fetcher) FetchText(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, url)
	if f.ErrToReturn != nil {
		return "", f.ErrToReturn
	}
	page, ok := f.PagesToReturn[url]
	if !ok {
		return "", fmt.Errorf("fake: no page for %s", url)
	}
	return page, nil
}

// Calls returns the URLs fetched so far.
func (f *Fetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}
