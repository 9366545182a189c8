package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// TokenClient troca uma asserção assinada por um access token de curta duração.
// Nada é guardado entre chamadas: cada AccessToken gera uma asserção nova.
type TokenClient struct {
	httpClient *http.Client
	tokenURL   string
	importer   KeyImporter
	now        func() time.Time
}

type TokenOption func(*TokenClient)

func WithTokenURL(tokenURL string) TokenOption {
	return func(c *TokenClient) {
		if strings.TrimSpace(tokenURL) != "" {
			c.tokenURL = tokenURL
		}
	}
}

func WithKeyImporter(importer KeyImporter) TokenOption {
	return func(c *TokenClient) {
		if importer != nil {
			c.importer = importer
		}
	}
}

func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenClient) {
		if now != nil {
			c.now = now
		}
	}
}

func NewTokenClient(httpClient *http.Client, opts ...TokenOption) *TokenClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	c := &TokenClient{
		httpClient: httpClient,
		tokenURL:   TokenURL,
		importer:   RS256Importer{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Assertion monta a asserção JWT assinada para a credencial e o escopo.
// Erros de credencial são *KeyError.
func (c *TokenClient) Assertion(cred ServiceAccountCredential, scope string) (string, error) {
	if err := cred.Validate(); err != nil {
		return "", err
	}

	der, err := DecodePrivateKeyPEM(cred.PrivateKeyPEM)
	if err != nil {
		return "", &KeyError{Reason: "invalid private key", Err: err}
	}

	signer, err := c.importer.ImportPKCS8(der)
	if err != nil {
		return "", &KeyError{Reason: "invalid private key", Err: err}
	}

	claims := NewAssertionClaims(cred.IssuerEmail, scope, c.now())
	assertion, err := BuildAssertion(claims, signer)
	if err != nil {
		return "", &KeyError{Reason: "could not sign assertion", Err: err}
	}
	return assertion, nil
}

// AccessToken executa a troca JWT-bearer. Falhas de rede ou respostas sem
// access_token viram *TokenError; o corpo da resposta só vai para o log.
func (c *TokenClient) AccessToken(ctx context.Context, cred ServiceAccountCredential, scope string) (string, error) {
	assertion, err := c.Assertion(cred, scope)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", JWTBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TokenError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TokenError{Err: fmt.Errorf("calling token endpoint: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", &TokenError{Status: resp.StatusCode, Err: fmt.Errorf("reading token response: %w", err)}
	}

	accessToken := gjson.GetBytes(body, "access_token").String()
	if accessToken == "" {
		log.WithFields(log.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
			"issuer": cred.IssuerEmail,
		}).Warn("❌ Google: resposta de token sem access_token")
		return "", &TokenError{Status: resp.StatusCode, Body: string(body)}
	}

	log.WithFields(log.Fields{
		"issuer":     cred.IssuerEmail,
		"expires_in": gjson.GetBytes(body, "expires_in").Int(),
	}).Debug("🔑 Google: access token obtido")

	return accessToken, nil
}
