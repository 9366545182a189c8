package worker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type StaleApplicationCanceller interface {
	CancelStale(ctx context.Context, olderThan time.Duration) ([]string, error)
}

// StaleApplicationWorker cancela aplicações abandonadas no meio do formulário,
// para que não fiquem como "incompleto" para sempre no painel.
type StaleApplicationWorker struct {
	repo         StaleApplicationCanceller
	staleAfter   time.Duration
	tickInterval time.Duration
}

func NewStaleApplicationWorker(repo StaleApplicationCanceller) *StaleApplicationWorker {
	return &StaleApplicationWorker{
		repo:         repo,
		staleAfter:   7 * 24 * time.Hour, // uma semana sem resposta
		tickInterval: time.Hour,
	}
}

func (w *StaleApplicationWorker) Start(ctx context.Context) {
	log.WithField("stale_after", w.staleAfter).Info("🕒 Worker de aplicações abandonadas iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.cancelStale(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("⚠️ Worker de aplicações abandonadas encerrado")
			return
		case <-ticker.C:
			w.cancelStale(ctx)
		}
	}
}

func (w *StaleApplicationWorker) cancelStale(ctx context.Context) int {
	ids, err := w.repo.CancelStale(ctx, w.staleAfter)
	if err != nil {
		log.WithError(err).Error("❌ Erro ao cancelar aplicações abandonadas")
		return 0
	}

	for _, id := range ids {
		log.WithField("application_id", id).Debug("⏱️ Aplicação abandonada cancelada")
	}
	if len(ids) > 0 {
		log.Infof("✅ %d aplicação(ões) marcadas como canceladas", len(ids))
	}
	return len(ids)
}
