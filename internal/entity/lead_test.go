package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func submission() LeadSubmission {
	return LeadSubmission{
		Nome:               "Ana Silva",
		Telefone:           "(11) 98888-7777",
		Email:              "ana@example.com",
		Instagram:          "@anasilva",
		Nicho:              "Estética",
		Cargo:              "Dona",
		Faturamento:        "R$10k-30k",
		Dificuldade:        "Outro",
		OutraDificuldade:   "Não sei precificar",
		Investimento:       "Sim",
		DataAgendamento:    "2025-03-10",
		HorarioAgendamento: "14:45",
	}
}

// TestResolvedDifficulty - "Outro" usa o texto livre, o resto é literal
func TestResolvedDifficulty(t *testing.T) {
	s := submission()
	assert.Equal(t, "Não sei precificar", s.ResolvedDifficulty())

	s.Dificuldade = "Atrair clientes"
	assert.Equal(t, "Atrair clientes", s.ResolvedDifficulty())

	s.Dificuldade = "outro"
	assert.Equal(t, "outro", s.ResolvedDifficulty(), "comparação é exata")
}

// TestNewAppendedRowOrder - Doze colunas na ordem da planilha
func TestNewAppendedRowOrder(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	submittedAt := time.Date(2025, 3, 1, 9, 30, 45, 7_000_000, loc)

	row := NewAppendedRow(submittedAt, submission())

	assert.Equal(t, AppendedRow{
		"2025-03-01T12:30:45.007Z",
		"Ana Silva",
		"(11) 98888-7777",
		"ana@example.com",
		"@anasilva",
		"Estética",
		"Dona",
		"R$10k-30k",
		"Não sei precificar",
		"Sim",
		"2025-03-10",
		"14:45",
	}, row)
}

// TestNewAppendedRowEmptyFields - Campo vazio continua ocupando a coluna
func TestNewAppendedRowEmptyFields(t *testing.T) {
	s := submission()
	s.Instagram = ""
	s.Dificuldade = "Outro"
	s.OutraDificuldade = ""

	cells := NewAppendedRow(time.Unix(0, 0), s).Cells()

	assert.Len(t, cells, RowColumns)
	assert.Equal(t, "", cells[4])
	assert.Equal(t, "", cells[8])
	assert.Equal(t, "1970-01-01T00:00:00.000Z", cells[0])
}
