package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

type SaveProgressUseCase struct {
	Repo entity.ApplicationRepositoryInterface
}

func NewSaveProgressUseCase(repo entity.ApplicationRepositoryInterface) *SaveProgressUseCase {
	return &SaveProgressUseCase{Repo: repo}
}

// Execute grava o que o lead já respondeu. Na primeira chamada o ID é gerado
// aqui e devolvido para o front reutilizar nas próximas.
func (uc *SaveProgressUseCase) Execute(ctx context.Context, input SaveProgressInput) (*SaveProgressOutput, error) {
	if input.Step < 1 || input.Step > entity.LastQuestion {
		return nil, newValidationPayloadError([]ValidationError{{"step", "must be between 1 and 11"}})
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.New().String()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, newValidationPayloadError([]ValidationError{{"id", "must be a valid UUID"}})
	}

	app := entity.NewApplication(id, input.Data, entity.ApplicationIncomplete, input.Step)
	if err := uc.Repo.Upsert(ctx, app); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to save progress: " + err.Error(),
			Err:     err,
		}
	}

	return &SaveProgressOutput{ID: id}, nil
}
