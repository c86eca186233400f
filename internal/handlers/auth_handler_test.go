package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"muroom/internal/handlers"
	"muroom/internal/models"
	"muroom/internal/repositories"
	"muroom/internal/routes"
	"muroom/internal/services"
)

type recordMailer struct {
	confirmations []string
	resets        []string
	fail          bool
}

func (m *recordMailer) SendConfirmationEmail(_, token string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.confirmations = append(m.confirmations, token)
	return nil
}

func (m *recordMailer) SendPasswordResetEmail(_, token string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.resets = append(m.resets, token)
	return nil
}

type fixture struct {
	router *gin.Engine
	repo   *repositories.InMemoryUserRepository
	tokens *services.TokenService
	mailer *recordMailer
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	repo := repositories.NewInMemoryUserRepository()
	tokens := services.NewTokenService("test-secret")
	mailer := &recordMailer{}
	accounts := services.NewAccountService(repo, services.NewAuthService(), tokens, mailer)
	resets := services.NewPasswordResetService(repo, tokens, mailer)

	router := gin.New()
	routes.SetupRoutes(router,
		handlers.NewAuthHandler(accounts, resets, tokens),
		handlers.NewUserHandler(accounts),
		tokens,
	)
	return &fixture{router: router, repo: repo, tokens: tokens, mailer: mailer}
}

func (f *fixture) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) registerUser(t *testing.T, email, password string) models.SessionResponse {
	t.Helper()
	token, err := f.tokens.SignConfirmation(email, password)
	require.NoError(t, err)

	w := f.do(http.MethodPost, "/register", gin.H{"token": token}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestWelcome(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/welcome", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Welcome to Muroom.", decodeJSON(t, w)["data"])
}

func TestPreRegisterHappyPath(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/pre-register", gin.H{"email": "a@b.com", "password": "12345678"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeJSON(t, w)["ok"])
	require.Len(t, f.mailer.confirmations, 1)

	// the emailed token really completes a registration
	claims, err := f.tokens.VerifyConfirmation(f.mailer.confirmations[0])
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Email)
}

func TestPreRegisterTakenEmail(t *testing.T) {
	f := newFixture()
	f.registerUser(t, "a@b.com", "12345678")

	w := f.do(http.MethodPost, "/pre-register", gin.H{"email": "a@b.com", "password": "12345678"}, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "이미 사용 중인 이메일입니다.", decodeJSON(t, w)["error"])
	require.Empty(t, f.mailer.confirmations)
}

func TestPreRegisterBadEmail(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/pre-register", gin.H{"email": "not-an-email", "password": "12345678"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "이메일 형식이 맞지 않습니다. 다시 입력해주세요.", decodeJSON(t, w)["error"])
	require.Empty(t, f.mailer.confirmations)
}

func TestPreRegisterShortPassword(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/pre-register", gin.H{"email": "a@b.com", "password": "1234567"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "비밀번호가 너무 짧습니다. 8자 이상으로 다시 입력해주세요.", decodeJSON(t, w)["error"])
}

func TestPreRegisterMissingPassword(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/pre-register", gin.H{"email": "a@b.com"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "비밀번호를 입력해주세요.", decodeJSON(t, w)["error"])
}

func TestPreRegisterMailFailure(t *testing.T) {
	f := newFixture()
	f.mailer.fail = true

	w := f.do(http.MethodPost, "/pre-register", gin.H{"email": "a@b.com", "password": "12345678"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeJSON(t, w)["ok"])
}

func TestRegisterIssuesVerifiableSession(t *testing.T) {
	f := newFixture()

	resp := f.registerUser(t, "a@b.com", "12345678")
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "a@b.com", resp.User.Email)

	claims, err := f.tokens.VerifySession(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID.Hex(), claims.UserID)
}

func TestRegisterResponseHidesSensitiveFields(t *testing.T) {
	f := newFixture()

	token, err := f.tokens.SignConfirmation("a@b.com", "12345678")
	require.NoError(t, err)

	w := f.do(http.MethodPost, "/register", gin.H{"token": token}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "reset_code")
	require.NotContains(t, body, "resetCode")
}

func TestRegisterSameTokenTwice(t *testing.T) {
	f := newFixture()

	token, err := f.tokens.SignConfirmation("a@b.com", "12345678")
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/register", gin.H{"token": token}, "").Code)

	w := f.do(http.MethodPost, "/register", gin.H{"token": token}, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "이미 사용 중인 이메일입니다.", decodeJSON(t, w)["error"])
}

func TestRegisterExpiredToken(t *testing.T) {
	f := newFixture()

	// craft an expired confirmation token with the same secret
	claims := jwt.MapClaims{
		"email":    "a@b.com",
		"password": "12345678",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w := f.do(http.MethodPost, "/register", gin.H{"token": token}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "유효하지 않은 token입니다.", decodeJSON(t, w)["error"])
}

func TestLoginHappyPath(t *testing.T) {
	f := newFixture()
	created := f.registerUser(t, "a@b.com", "12345678")

	w := f.do(http.MethodPost, "/login", gin.H{"email": "a@b.com", "password": "12345678"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := f.tokens.VerifySession(resp.Token)
	require.NoError(t, err)
	require.Equal(t, created.User.ID.Hex(), claims.UserID)
	require.NotContains(t, w.Body.String(), "password")
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/login", gin.H{"email": "nobody@b.com", "password": "12345678"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	f.registerUser(t, "a@b.com", "12345678")

	w := f.do(http.MethodPost, "/login", gin.H{"email": "a@b.com", "password": "wrong-password"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/forgot-password", gin.H{"email": "nobody@b.com"}, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Empty(t, f.mailer.resets)
}

func TestForgotPasswordThenAccessAccount(t *testing.T) {
	f := newFixture()
	created := f.registerUser(t, "a@b.com", "12345678")

	w := f.do(http.MethodPost, "/forgot-password", gin.H{"email": "a@b.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeJSON(t, w)["ok"])
	require.Len(t, f.mailer.resets, 1)

	token := f.mailer.resets[0]
	w = f.do(http.MethodPost, "/access-account", gin.H{"resetCode": token}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, created.User.ID, resp.User.ID)

	// reset codes are single-use
	w = f.do(http.MethodPost, "/access-account", gin.H{"resetCode": token}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture()
	created := f.registerUser(t, "a@b.com", "12345678")

	w := f.do(http.MethodGet, "/refresh-token", nil, created.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := f.tokens.VerifySession(resp.Token)
	require.NoError(t, err)
	require.Equal(t, created.User.ID.Hex(), claims.UserID)
}

func TestRefreshTokenRequiresAuth(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/refresh-token", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
