package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/entity"
	"github.com/xavierca1/mentoria-leads/internal/infra/http/middleware"
	"github.com/xavierca1/mentoria-leads/internal/usecase"
)

// availableDatesCount é quantos dias úteis o calendário do formulário mostra.
const availableDatesCount = 2

type ProgressSaver interface {
	Execute(ctx context.Context, input usecase.SaveProgressInput) (*usecase.SaveProgressOutput, error)
}

type ApplicationCompleter interface {
	Execute(ctx context.Context, id string, input entity.LeadSubmission) (*usecase.CompleteApplicationOutput, error)
}

type SlotFinder interface {
	Slots(ctx context.Context, date string) ([]string, error)
	Dates(count int) []time.Time
}

type ApplicationHandler struct {
	SaveProgressUC ProgressSaver
	CompleteUC     ApplicationCompleter
	SlotsUC        SlotFinder
	rateLimiter    *RateLimiter
}

func NewApplicationHandler(save ProgressSaver, complete ApplicationCompleter, slots SlotFinder) *ApplicationHandler {
	return &ApplicationHandler{
		SaveProgressUC: save,
		CompleteUC:     complete,
		SlotsUC:        slots,
		rateLimiter:    NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

// SaveProgress grava cada pergunta respondida do formulário.
func (h *ApplicationHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.SaveProgressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.fail(w, usecase.NewPayloadError(err))
		return
	}

	output, err := h.SaveProgressUC.Execute(r.Context(), input)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, output)
}

// Complete recebe a submissão final do formulário.
func (h *ApplicationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input entity.LeadSubmission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.fail(w, usecase.NewPayloadError(err))
		return
	}

	output, err := h.CompleteUC.Execute(r.Context(), id, input)
	if err != nil {
		h.fail(w, err)
		return
	}

	middleware.RecordApplicationCompleted()
	if output.SheetsExported {
		middleware.RecordSheetsExport("success")
	} else {
		middleware.RecordSheetsExport("failed")
	}

	writeSuccess(w, http.StatusOK, output)
}

// AvailableSlots: GET /api/agenda/horarios?data=YYYY-MM-DD
func (h *ApplicationHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.SlotsUC.Slots(r.Context(), r.URL.Query().Get("data"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, slots)
}

func (h *ApplicationHandler) AvailableDates(w http.ResponseWriter, r *http.Request) {
	days := h.SlotsUC.Dates(availableDatesCount)

	dates := make([]string, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Format("2006-01-02"))
	}
	writeSuccess(w, http.StatusOK, dates)
}

func (h *ApplicationHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	entry := log.WithError(err).WithField("code", usecase.ErrorCode(err))
	if status >= http.StatusInternalServerError {
		entry.Error("❌ Erro no fluxo de aplicação")
	} else {
		entry.Warn("Requisição recusada")
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	var techErr *usecase.TechnicalError
	switch {
	case usecase.IsPayloadError(err):
		return http.StatusBadRequest
	case errors.As(err, &techErr) && techErr.Code == usecase.CodeNotFound:
		return http.StatusNotFound
	case errors.As(err, &techErr) && techErr.Code == usecase.CodeSlotTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
