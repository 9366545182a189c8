package usecase

import (
	"google.golang.org/api/sheets/v4"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

type ExportLeadOutput struct {
	Data *sheets.AppendValuesResponse
	Row  entity.AppendedRow
}

type SaveProgressInput struct {
	ID   string                `json:"id,omitempty"`
	Step int                   `json:"step"`
	Data entity.LeadSubmission `json:"data"`
}

type SaveProgressOutput struct {
	ID string `json:"id"`
}

type CompleteApplicationOutput struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	SheetsExported bool   `json:"sheets_exported"`
	// AlreadyCompleted indica uma repetição: nada foi regravado nem reenviado.
	AlreadyCompleted bool `json:"already_completed,omitempty"`
}
