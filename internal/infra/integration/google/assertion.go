package google

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AssertionClaims é o claim set da asserção JWT-bearer do Google.
type AssertionClaims struct {
	Issuer    string `json:"iss"`
	Scope     string `json:"scope"`
	Audience  string `json:"aud"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// NewAssertionClaims fixa exp = iat + 3600.
func NewAssertionClaims(issuer, scope string, now time.Time) AssertionClaims {
	iat := now.Unix()
	return AssertionClaims{
		Issuer:    issuer,
		Scope:     scope,
		Audience:  TokenURL,
		ExpiresAt: iat + AssertionTTLSeconds,
		IssuedAt:  iat,
	}
}

func (c AssertionClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c AssertionClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

func (c AssertionClaims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

func (c AssertionClaims) GetIssuer() (string, error) { return c.Issuer, nil }

func (c AssertionClaims) GetSubject() (string, error) { return "", nil }

func (c AssertionClaims) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.Audience}, nil
}

// BuildAssertion serializa header e claims em base64url sem padding, assina a
// entrada com o signer e anexa a assinatura como terceiro segmento.
func BuildAssertion(claims AssertionClaims, signer Signer) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signingInput, err := token.SigningString()
	if err != nil {
		return "", fmt.Errorf("encoding assertion: %w", err)
	}

	signature, err := signer.Sign([]byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}

	return signingInput + "." + token.EncodeSegment(signature), nil
}
