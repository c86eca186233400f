package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validity windows of every token the backend hands out. Sessions are
// stateless; nothing is persisted and revocation is not supported.
const (
	SessionTokenTTL      = time.Hour
	RefreshTokenTTL      = 7 * 24 * time.Hour
	ConfirmationTokenTTL = time.Hour
	ResetTokenTTL        = time.Hour
)

// SessionClaims carries the identity of a logged-in user.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// ConfirmationClaims carries the pending registration until the user clicks
// the email link. The database is not touched before the token comes back.
type ConfirmationClaims struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	jwt.RegisteredClaims
}

// ResetClaims wraps the single-use reset code stored on the user record.
type ResetClaims struct {
	ResetCode string `json:"resetCode"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies every JWT used by the backend (HS256).
// The secret comes from config, not from a package-level variable.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	// принимаем только HMAC
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}

func (s *TokenService) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func expiry(ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
}

func (s *TokenService) SignSession(userID string) (string, error) {
	return s.sign(&SessionClaims{UserID: userID, RegisteredClaims: expiry(SessionTokenTTL)})
}

func (s *TokenService) SignRefresh(userID string) (string, error) {
	return s.sign(&SessionClaims{UserID: userID, RegisteredClaims: expiry(RefreshTokenTTL)})
}

func (s *TokenService) SignConfirmation(email, password string) (string, error) {
	return s.sign(&ConfirmationClaims{Email: email, Password: password, RegisteredClaims: expiry(ConfirmationTokenTTL)})
}

func (s *TokenService) SignReset(resetCode string) (string, error) {
	return s.sign(&ResetClaims{ResetCode: resetCode, RegisteredClaims: expiry(ResetTokenTTL)})
}

func (s *TokenService) VerifySession(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc)
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyConfirmation(tokenStr string) (*ConfirmationClaims, error) {
	claims := &ConfirmationClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc)
	if err != nil || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyReset(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc)
	if err != nil || !token.Valid || claims.ResetCode == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
