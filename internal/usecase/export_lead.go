package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/entity"
	"github.com/xavierca1/mentoria-leads/internal/infra/integration/google"
)

// ExportLeadUseCase envia uma submissão para a planilha de leads: troca a
// credencial por um token e faz um único append. Não guarda estado entre
// chamadas e não tenta de novo.
type ExportLeadUseCase struct {
	Credential google.ServiceAccountCredential
	Tokens     TokenProvider
	Sheets     RowAppender
	Now        func() time.Time
}

func NewExportLeadUseCase(cred google.ServiceAccountCredential, tokens TokenProvider, sheets RowAppender) *ExportLeadUseCase {
	return &ExportLeadUseCase{
		Credential: cred,
		Tokens:     tokens,
		Sheets:     sheets,
		Now:        time.Now,
	}
}

func (uc *ExportLeadUseCase) Execute(ctx context.Context, input entity.LeadSubmission) (*ExportLeadOutput, error) {
	if validationErrors := ValidateLeadSubmission(input); len(validationErrors) > 0 {
		return nil, newValidationPayloadError(validationErrors)
	}

	if err := uc.Credential.Validate(); err != nil {
		return nil, &ConfigurationError{
			Code:    CodeConfiguration,
			Message: "Google credentials not configured",
			Err:     err,
		}
	}

	if err := uc.Sheets.Configured(); err != nil {
		return nil, &ConfigurationError{
			Code:    CodeConfiguration,
			Message: "Google spreadsheet not configured",
			Err:     err,
		}
	}

	token, err := uc.Tokens.AccessToken(ctx, uc.Credential, google.SpreadsheetScope)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	row := entity.NewAppendedRow(uc.Now(), input)

	resp, err := uc.Sheets.AppendRow(ctx, token, row)
	if err != nil {
		return nil, classifyAppendError(err)
	}

	log.WithFields(log.Fields{
		"lead_email": input.Email,
		"agenda":     input.DataAgendamento + " " + input.HorarioAgendamento,
	}).Info("📊 Lead enviado para o Google Sheets")

	return &ExportLeadOutput{Data: resp, Row: row}, nil
}

func classifyTokenError(err error) error {
	var keyErr *google.KeyError
	if errors.As(err, &keyErr) {
		return &ConfigurationError{
			Code:    CodeConfiguration,
			Message: "invalid Google private key",
			Err:     err,
		}
	}
	return &TokenExchangeError{
		Code:    CodeTokenExchange,
		Message: "Failed to get access token",
		Err:     err,
	}
}

func classifyAppendError(err error) error {
	var keyErr *google.KeyError
	if errors.As(err, &keyErr) {
		return &ConfigurationError{
			Code:    CodeConfiguration,
			Message: "Google spreadsheet not configured",
			Err:     err,
		}
	}

	sheetsErr := &SheetsAPIError{
		Code:    CodeSheetsAPI,
		Message: fmt.Sprintf("Google Sheets API error: %v", err),
		Err:     err,
	}
	var apiErr *google.APIError
	if errors.As(err, &apiErr) {
		sheetsErr.Status = apiErr.Status
		sheetsErr.Body = apiErr.Body
		if apiErr.Body != "" {
			sheetsErr.Message = "Google Sheets API error: " + apiErr.Body
		}
	}
	return sheetsErr
}
