package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/config"
	"github.com/xavierca1/mentoria-leads/internal/entity"
	"github.com/xavierca1/mentoria-leads/internal/infra/integration/google"
	"github.com/xavierca1/mentoria-leads/internal/usecase"
)

// Envia uma linha de teste para a planilha configurada no .env.
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("❌ Configuração inválida")
	}

	if !cfg.GoogleConfigured() {
		log.Fatal("❌ GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_PRIVATE_KEY e GOOGLE_SPREADSHEET_ID devem estar configurados no .env")
	}

	httpClient := &http.Client{Timeout: cfg.Google.HTTPTimeout}
	uc := usecase.NewExportLeadUseCase(
		cfg.Credential(),
		google.NewTokenClient(httpClient),
		google.NewSheetsClient(httpClient, cfg.Google.SpreadsheetID, cfg.Google.SheetName),
	)

	input := entity.LeadSubmission{
		Nome:               "Joao Teste da Silva",
		Telefone:           "61999767638",
		Email:              "joao.teste@email.com",
		Instagram:          "joao.teste",
		Nicho:              "Estética",
		Cargo:              "Dono",
		Faturamento:        "15-50k",
		Dificuldade:        "Outro",
		OutraDificuldade:   "Linha de teste, pode apagar",
		Investimento:       "Pagamento à vista",
		DataAgendamento:    time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		HorarioAgendamento: "09:45",
	}

	fmt.Println("🔄 Enviando lead de teste para o Google Sheets...")
	fmt.Printf("   Planilha: %s (%s)\n", cfg.Google.SpreadsheetID, cfg.Google.SheetName)
	fmt.Printf("   Conta:    %s\n\n", cfg.Google.ServiceAccountEmail)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	output, err := uc.Execute(ctx, input)
	if err != nil {
		log.WithError(err).WithField("code", usecase.ErrorCode(err)).Fatal("❌ Erro ao enviar para o Google Sheets")
	}

	fmt.Println("✅ Linha adicionada!")
	if output.Data != nil && output.Data.Updates != nil {
		fmt.Printf("   Range: %s\n", output.Data.Updates.UpdatedRange)
	}
	fmt.Printf("   Linha: %v\n", output.Row)
}
