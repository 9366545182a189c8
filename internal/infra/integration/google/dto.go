package google

import (
	"fmt"
	"strings"
)

const (
	TokenURL         = "https://oauth2.googleapis.com/token"
	SheetsEndpoint   = "https://sheets.googleapis.com/"
	SpreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"
	JWTBearerGrant   = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// Validade máxima aceita pelo Google para a asserção.
	AssertionTTLSeconds = 3600
)

// ServiceAccountCredential identifica a service account que assina a asserção.
type ServiceAccountCredential struct {
	IssuerEmail   string
	PrivateKeyPEM string
}

func (c ServiceAccountCredential) Validate() error {
	if strings.TrimSpace(c.IssuerEmail) == "" {
		return &KeyError{Reason: "missing service account email"}
	}
	if strings.TrimSpace(c.PrivateKeyPEM) == "" {
		return &KeyError{Reason: "missing service account private key"}
	}
	return nil
}

// String nunca expõe a chave privada.
func (c ServiceAccountCredential) String() string {
	return fmt.Sprintf("ServiceAccountCredential{IssuerEmail: %q, PrivateKeyPEM: [REDACTED]}", c.IssuerEmail)
}

// KeyError indica credencial ausente ou chave inválida. Sempre ocorre antes de
// qualquer chamada de rede.
type KeyError struct {
	Reason string
	Err    error
}

func (e *KeyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("google credential: %s: %v", e.Reason, e.Err)
	}
	return "google credential: " + e.Reason
}

func (e *KeyError) Unwrap() error { return e.Err }

// TokenError indica que o endpoint de token não devolveu um access_token.
type TokenError struct {
	Status int
	Body   string
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("token exchange failed: status %d without access_token", e.Status)
}

func (e *TokenError) Unwrap() error { return e.Err }

// APIError é uma resposta de erro da API do Sheets. Body traz o corpo original.
type APIError struct {
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("sheets api error %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("sheets api error: %v", e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
