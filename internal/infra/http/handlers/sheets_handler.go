package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/entity"
	"github.com/xavierca1/mentoria-leads/internal/infra/http/middleware"
	"github.com/xavierca1/mentoria-leads/internal/usecase"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

	// maxSheetsBodyBytes limita o corpo de uma submissão.
	maxSheetsBodyBytes = 64 << 10
)

// SheetsHandler expõe o envio de um lead para a planilha. Qualquer falha
// vira 500 com o envelope; nada escapa do handler.
type SheetsHandler struct {
	Exporter usecase.LeadExporter
}

func NewSheetsHandler(exporter usecase.LeadExporter) *SheetsHandler {
	return &SheetsHandler{Exporter: exporter}
}

func (h *SheetsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
	w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)

	// Pre-flight responde antes de qualquer checagem de configuração.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("🔥 Panic no envio para o Google Sheets")
			middleware.RecordSheetsExport("failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}()

	var input entity.LeadSubmission
	body := http.MaxBytesReader(w, r.Body, maxSheetsBodyBytes)
	if err := json.NewDecoder(body).Decode(&input); err != nil {
		h.fail(w, usecase.NewPayloadError(err))
		return
	}

	output, err := h.Exporter.Execute(r.Context(), input)
	if err != nil {
		h.fail(w, err)
		return
	}

	middleware.RecordSheetsExport("success")
	writeSuccess(w, http.StatusOK, output.Data)
}

func (h *SheetsHandler) fail(w http.ResponseWriter, err error) {
	code := usecase.ErrorCode(err)
	log.WithError(err).WithField("code", code).Error("❌ Erro ao enviar para o Google Sheets")

	middleware.RecordSheetsExport("failed")
	if code != usecase.CodePayload {
		middleware.RecordIntegrationError("google_sheets", code)
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}
