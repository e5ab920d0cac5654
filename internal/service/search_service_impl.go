package service

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/repository"
)

// minQueryLen is the search-as-you-type threshold: queries of 2 characters
// or fewer never hit the network.
const minQueryLen = 3

type searchService struct {
	client  api.Client
	history repository.SearchHistoryRepo // nil disables history
	logger  *slog.Logger
	seq     atomic.Uint64
}

// NewSearchService creates the search service. Responses are sequence
// numbered so that a slow early response can never overwrite a faster later
// one: anything that is no longer the latest issued query is dropped.
func NewSearchService(client api.Client, history repository.SearchHistoryRepo, logger *slog.Logger) SearchService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &searchService{client: client, history: history, logger: logger}
}

func (s *searchService) Search(ctx context.Context, query string) (*SearchResultSet, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return nil, ErrEmptyQuery
	}

	id := s.seq.Add(1)
	results, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if id != s.seq.Load() {
		// A newer query was issued while this one was in flight.
		return &SearchResultSet{Latest: false}, nil
	}

	if s.history != nil {
		entry := &repository.SearchEntry{Query: query, ResultCount: len(results)}
		if err := s.history.Record(ctx, entry); err != nil {
			s.logger.Warn("recording search history failed", "error", err)
		}
	}
	return &SearchResultSet{Results: results, Latest: true}, nil
}

func (s *searchService) Recent(ctx context.Context, limit int) ([]*repository.SearchEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit)
}
