package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

// SheetsClient acrescenta linhas numa aba fixa de uma planilha fixa.
type SheetsClient struct {
	httpClient    *http.Client
	endpoint      string
	spreadsheetID string
	sheetName     string
}

type SheetsOption func(*SheetsClient)

func WithSheetsEndpoint(endpoint string) SheetsOption {
	return func(c *SheetsClient) {
		if strings.TrimSpace(endpoint) != "" {
			c.endpoint = strings.TrimRight(endpoint, "/") + "/"
		}
	}
}

func NewSheetsClient(httpClient *http.Client, spreadsheetID, sheetName string, opts ...SheetsOption) *SheetsClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	c := &SheetsClient{
		httpClient:    httpClient,
		endpoint:      SheetsEndpoint,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured confere o destino sem tocar a rede.
func (c *SheetsClient) Configured() error {
	if strings.TrimSpace(c.spreadsheetID) == "" || strings.TrimSpace(c.sheetName) == "" {
		return &KeyError{Reason: "missing spreadsheet id or sheet name"}
	}
	return nil
}

// AppendRow grava uma única linha com valueInputOption=RAW. Não há retentativa:
// qualquer status fora de 2xx volta como *APIError com o corpo recebido.
func (c *SheetsClient) AppendRow(ctx context.Context, accessToken string, row entity.AppendedRow) (*sheets.AppendValuesResponse, error) {
	if err := c.Configured(); err != nil {
		return nil, err
	}

	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	values := &sheets.ValueRange{Values: [][]interface{}{row.Cells()}}

	resp, err := srv.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			log.WithFields(log.Fields{
				"status": gErr.Code,
				"body":   gErr.Body,
			}).Warn("❌ Sheets: append recusado")
			return nil, &APIError{Status: gErr.Code, Body: gErr.Body, Err: err}
		}
		return nil, &APIError{Err: fmt.Errorf("calling sheets append: %w", err)}
	}

	var updatedRange string
	if resp.Updates != nil {
		updatedRange = resp.Updates.UpdatedRange
	}
	log.WithFields(log.Fields{
		"spreadsheet": c.spreadsheetID,
		"range":       updatedRange,
	}).Info("✅ Sheets: linha adicionada")

	return resp, nil
}

// service cria um cliente por chamada, autenticado só com o token recebido.
func (c *SheetsClient) service(ctx context.Context, accessToken string) (*sheets.Service, error) {
	base := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	authed := oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	authed.Timeout = c.httpClient.Timeout

	srv, err := sheets.NewService(ctx,
		option.WithHTTPClient(authed),
		option.WithEndpoint(c.endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("building sheets service: %w", err)
	}
	return srv, nil
}
