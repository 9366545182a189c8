package entity

import (
	"time"
)

// DificuldadeOutro é a opção do formulário que libera o campo de texto livre.
const DificuldadeOutro = "Outro"

// Formato igual ao Date.toISOString() do front (UTC, milissegundos).
const SubmissionTimeLayout = "2006-01-02T15:04:05.000Z"

// LeadSubmission é o payload enviado pelo formulário de mentoria.
type LeadSubmission struct {
	Nome               string `json:"nome"`
	Telefone           string `json:"telefone"`
	Email              string `json:"email"`
	Instagram          string `json:"instagram"`
	Nicho              string `json:"nicho"`
	Cargo              string `json:"cargo"`
	Faturamento        string `json:"faturamento"`
	Dificuldade        string `json:"dificuldade"`
	OutraDificuldade   string `json:"outraDificuldade,omitempty"`
	Investimento       string `json:"investimento"`
	DataAgendamento    string `json:"dataAgendamento"`
	HorarioAgendamento string `json:"horarioAgendamento"`
}

// ResolvedDifficulty devolve o texto livre quando a opção "Outro" foi
// escolhida e a opção selecionada nos demais casos.
func (s LeadSubmission) ResolvedDifficulty() string {
	if s.Dificuldade == DificuldadeOutro {
		return s.OutraDificuldade
	}
	return s.Dificuldade
}

// RowColumns é o número de colunas esperado na planilha.
const RowColumns = 12

// AppendedRow é uma linha da planilha, na ordem exata das colunas.
type AppendedRow [RowColumns]string

// NewAppendedRow monta a linha da planilha para uma submissão.
func NewAppendedRow(submittedAt time.Time, s LeadSubmission) AppendedRow {
	return AppendedRow{
		submittedAt.UTC().Format(SubmissionTimeLayout),
		s.Nome,
		s.Telefone,
		s.Email,
		s.Instagram,
		s.Nicho,
		s.Cargo,
		s.Faturamento,
		s.ResolvedDifficulty(),
		s.Investimento,
		s.DataAgendamento,
		s.HorarioAgendamento,
	}
}

// Cells converte a linha para o formato aceito pela API do Sheets.
func (r AppendedRow) Cells() []interface{} {
	cells := make([]interface{}, len(r))
	for i, v := range r {
		cells[i] = v
	}
	return cells
}
