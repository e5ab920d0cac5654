package service

import (
	"context"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
)

type summaryService struct {
	client api.Client
}

// NewSummaryService creates the weekly summary service.
func NewSummaryService(client api.Client) SummaryService {
	return &summaryService{client: client}
}

// Generate asks the server for a fresh summary. Like scope generation this
// is long-running and its errors are surfaced verbatim.
func (s *summaryService) Generate(ctx context.Context, projectID string, tone domain.SummaryTone) (*domain.Summary, error) {
	if tone != domain.ToneTechnical && tone != domain.ToneExecutive {
		return nil, ErrInvalidType
	}
	return s.client.GenerateSummary(ctx, projectID, api.GenerateSummaryInput{Tone: tone})
}

func (s *summaryService) List(ctx context.Context, projectID string) ([]domain.Summary, error) {
	return s.client.ListSummaries(ctx, projectID)
}
