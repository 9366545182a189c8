package usecase

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeTokenExchange = "TOKEN_EXCHANGE_ERROR"
	CodeSheetsAPI     = "SHEETS_API_ERROR"
	CodePayload       = "PAYLOAD_ERROR"
	CodeDatabase      = "DATABASE_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeSlotTaken     = "SLOT_UNAVAILABLE"
)

// ConfigurationError: segredo ausente ou malformado, antes de qualquer I/O.
type ConfigurationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string { return e.Message }
func (e *ConfigurationError) Unwrap() error { return e.Err }

// TokenExchangeError: endpoint de token inacessível ou sem access_token.
type TokenExchangeError struct {
	Code    string
	Message string
	Err     error
}

func (e *TokenExchangeError) Error() string { return e.Message }
func (e *TokenExchangeError) Unwrap() error { return e.Err }

// SheetsAPIError: append recusado. Body guarda o corpo devolvido pelo Google.
type SheetsAPIError struct {
	Code    string
	Message string
	Status  int
	Body    string
	Err     error
}

func (e *SheetsAPIError) Error() string { return e.Message }
func (e *SheetsAPIError) Unwrap() error { return e.Err }

// PayloadError: JSON inválido ou campos obrigatórios faltando.
type PayloadError struct {
	Code    string
	Message string
	Fields  []ValidationError
	Err     error
}

func (e *PayloadError) Error() string { return e.Message }
func (e *PayloadError) Unwrap() error { return e.Err }

func NewPayloadError(err error) *PayloadError {
	return &PayloadError{
		Code:    CodePayload,
		Message: fmt.Sprintf("invalid payload: %v", err),
		Err:     err,
	}
}

func newValidationPayloadError(fields []ValidationError) *PayloadError {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Error())
	}
	return &PayloadError{
		Code:    CodePayload,
		Message: "validation failed: " + strings.Join(parts, ", "),
		Fields:  fields,
	}
}

// TechnicalError cobre falhas de infraestrutura do fluxo principal (banco).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string { return e.Message }
func (e *TechnicalError) Unwrap() error { return e.Err }

// ErrorCode devolve o código do erro tipado, ou "INTERNAL_ERROR".
func ErrorCode(err error) string {
	var (
		cfgErr    *ConfigurationError
		tokenErr  *TokenExchangeError
		sheetsErr *SheetsAPIError
		payErr    *PayloadError
		techErr   *TechnicalError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return cfgErr.Code
	case errors.As(err, &tokenErr):
		return tokenErr.Code
	case errors.As(err, &sheetsErr):
		return sheetsErr.Code
	case errors.As(err, &payErr):
		return payErr.Code
	case errors.As(err, &techErr):
		return techErr.Code
	default:
		return "INTERNAL_ERROR"
	}
}

func IsPayloadError(err error) bool {
	var e *PayloadError
	return errors.As(err, &e)
}
