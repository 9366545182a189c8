package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

func testRow() entity.AppendedRow {
	return entity.NewAppendedRow(time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC), entity.LeadSubmission{
		Nome:               "Ana Silva",
		Telefone:           "11999998888",
		Email:              "ana@x.com",
		Instagram:          "ana.silva",
		Nicho:              "Estética",
		Cargo:              "Dono",
		Faturamento:        "15-50k",
		Dificuldade:        "Outro",
		OutraDificuldade:   "Não sei precificar",
		Investimento:       "Pagamento à vista",
		DataAgendamento:    "2025-03-10",
		HorarioAgendamento: "09:45",
	})
}

// TestAppendRowSuccess - chama o endpoint de append com RAW e bearer token
func TestAppendRowSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Sheet1:append", r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))

		var body struct {
			Values [][]string `json:"values"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Values, 1)
		require.Len(t, body.Values[0], entity.RowColumns)
		assert.Equal(t, "2025-03-07T14:30:00.000Z", body.Values[0][0])
		assert.Equal(t, "Não sei precificar", body.Values[0][8])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"sheet-123","tableRange":"Sheet1!A1:L4","updates":{"updatedRange":"Sheet1!A5:L5","updatedRows":1,"updatedCells":12}}`))
	}))
	defer srv.Close()

	client := NewSheetsClient(srv.Client(), "sheet-123", "Sheet1", WithSheetsEndpoint(srv.URL))
	resp, err := client.AppendRow(context.Background(), "ya29.token", testRow())

	require.NoError(t, err)
	assert.Equal(t, "sheet-123", resp.SpreadsheetId)
	assert.Equal(t, int64(12), resp.Updates.UpdatedCells)
}

// TestAppendRowAPIError - status não-2xx preserva o corpo de erro do Google
func TestAppendRowAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client := NewSheetsClient(srv.Client(), "sheet-123", "Sheet1", WithSheetsEndpoint(srv.URL))
	_, err := client.AppendRow(context.Background(), "ya29.token", testRow())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Contains(t, apiErr.Body, "PERMISSION_DENIED")
}

// TestAppendRowMissingSpreadsheet - sem planilha configurada não há chamada
func TestAppendRowMissingSpreadsheet(t *testing.T) {
	client := NewSheetsClient(nil, "", "Sheet1")
	_, err := client.AppendRow(context.Background(), "ya29.token", testRow())

	var keyErr *KeyError
	assert.ErrorAs(t, err, &keyErr)
}

// TestSheetsConfigured - ID e aba são obrigatórios
func TestSheetsConfigured(t *testing.T) {
	assert.NoError(t, NewSheetsClient(nil, "sheet-123", "Sheet1").Configured())

	var keyErr *KeyError
	assert.ErrorAs(t, NewSheetsClient(nil, "", "Sheet1").Configured(), &keyErr)
	assert.ErrorAs(t, NewSheetsClient(nil, "sheet-123", "  ").Configured(), &keyErr)
}
