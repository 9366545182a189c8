package usecase

import (
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/xavierca1/mentoria-leads/internal/entity"
	"github.com/xavierca1/mentoria-leads/internal/infra/integration/google"
	"github.com/xavierca1/mentoria-leads/internal/infra/queue"
)

type TokenProvider interface {
	AccessToken(ctx context.Context, cred google.ServiceAccountCredential, scope string) (string, error)
}

type RowAppender interface {
	Configured() error
	AppendRow(ctx context.Context, accessToken string, row entity.AppendedRow) (*sheets.AppendValuesResponse, error)
}

// LeadExporter é o envio best-effort usado pelo fluxo de conclusão.
type LeadExporter interface {
	Execute(ctx context.Context, input entity.LeadSubmission) (*ExportLeadOutput, error)
}

type QueueProducerInterface interface {
	PublishLeadCompleted(ctx context.Context, payload queue.LeadCompletedPayload) error
}
