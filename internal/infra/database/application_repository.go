package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

type ApplicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// Upsert grava o progresso parcial. Campo vazio não apaga o que já estava salvo
// e uma aplicação já concluída não volta para incompleto.
func (r *ApplicationRepository) Upsert(ctx context.Context, app *entity.Application) error {
	query := `
		INSERT INTO aplicacoes_mentoria (
			id, nome, telefone, email, instagram, nicho, cargo, faturamento,
			dificuldade, investimento, data_agendamento, horario_agendamento,
			status, ultima_pergunta, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			nome = COALESCE(EXCLUDED.nome, aplicacoes_mentoria.nome),
			telefone = COALESCE(EXCLUDED.telefone, aplicacoes_mentoria.telefone),
			email = COALESCE(EXCLUDED.email, aplicacoes_mentoria.email),
			instagram = COALESCE(EXCLUDED.instagram, aplicacoes_mentoria.instagram),
			nicho = COALESCE(EXCLUDED.nicho, aplicacoes_mentoria.nicho),
			cargo = COALESCE(EXCLUDED.cargo, aplicacoes_mentoria.cargo),
			faturamento = COALESCE(EXCLUDED.faturamento, aplicacoes_mentoria.faturamento),
			dificuldade = COALESCE(EXCLUDED.dificuldade, aplicacoes_mentoria.dificuldade),
			investimento = COALESCE(EXCLUDED.investimento, aplicacoes_mentoria.investimento),
			data_agendamento = COALESCE(EXCLUDED.data_agendamento, aplicacoes_mentoria.data_agendamento),
			horario_agendamento = COALESCE(EXCLUDED.horario_agendamento, aplicacoes_mentoria.horario_agendamento),
			ultima_pergunta = GREATEST(EXCLUDED.ultima_pergunta, aplicacoes_mentoria.ultima_pergunta),
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE aplicacoes_mentoria.status <> 'completo'
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		app.ID,
		nullString(app.Nome),
		nullString(app.Telefone),
		nullString(app.Email),
		nullString(app.Instagram),
		nullString(app.Nicho),
		nullString(app.Cargo),
		nullString(app.Faturamento),
		nullString(app.Dificuldade),
		nullString(app.Investimento),
		nullString(app.DataAgendamento),
		nullString(app.HorarioAgendamento),
		app.Status,
		app.UltimaPergunta,
	).Scan(&app.UpdatedAt)

	// Sem linha de volta: a aplicação já estava concluída. Nada a fazer.
	if err == sql.ErrNoRows {
		return nil
	}
	return err
}

// Complete grava a submissão final e marca como concluída. Só sai de
// incompleto/cancelado: uma aplicação já concluída não é regravada.
func (r *ApplicationRepository) Complete(ctx context.Context, app *entity.Application) error {
	query := `
		UPDATE aplicacoes_mentoria SET
			nome = $2, telefone = $3, email = $4, instagram = $5, nicho = $6,
			cargo = $7, faturamento = $8, dificuldade = $9, investimento = $10,
			data_agendamento = $11, horario_agendamento = $12,
			status = $13, ultima_pergunta = $14, updated_at = NOW()
		WHERE id = $1 AND status <> $13
	`

	res, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.Nome,
		app.Telefone,
		app.Email,
		app.Instagram,
		app.Nicho,
		app.Cargo,
		app.Faturamento,
		app.Dificuldade,
		app.Investimento,
		app.DataAgendamento,
		app.HorarioAgendamento,
		entity.ApplicationComplete,
		entity.LastQuestion,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.completeMiss(ctx, app.ID)
	}
	return nil
}

// completeMiss diferencia "não existe" de "já concluída".
func (r *ApplicationRepository) completeMiss(ctx context.Context, id string) error {
	var status string
	err := r.DB.QueryRowContext(ctx, `SELECT status FROM aplicacoes_mentoria WHERE id = $1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return entity.ErrApplicationNotFound
	}
	if err != nil {
		return err
	}
	if status == entity.ApplicationComplete {
		return entity.ErrAlreadyCompleted
	}
	return fmt.Errorf("aplicação %s não atualizada (status %s)", id, status)
}

// Reopen é a compensação de Complete. Só mexe em aplicação concluída.
func (r *ApplicationRepository) Reopen(ctx context.Context, id string) error {
	query := `UPDATE aplicacoes_mentoria SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	_, err := r.DB.ExecContext(ctx, query, entity.ApplicationIncomplete, id, entity.ApplicationComplete)
	return err
}

// CancelStale marca como cancelada toda aplicação incompleta sem atualização
// há mais de olderThan e devolve os IDs afetados.
func (r *ApplicationRepository) CancelStale(ctx context.Context, olderThan time.Duration) ([]string, error) {
	query := `
		UPDATE aplicacoes_mentoria
		SET
			status = $1,
			updated_at = NOW()
		WHERE
			status = $2
			AND updated_at < NOW() - make_interval(secs => $3)
		RETURNING id
	`

	rows, err := r.DB.QueryContext(ctx, query,
		entity.ApplicationCancelled,
		entity.ApplicationIncomplete,
		olderThan.Seconds(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Ping é usado pelo health check.
func (r *ApplicationRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
