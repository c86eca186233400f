package services

import "errors"

// Error kinds. Handlers map each kind onto one HTTP status code
// (409/401/404); everything else becomes a 500 with the cause logged.
var (
	ErrEmailTaken         = errors.New("이미 사용 중인 이메일입니다.")
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 올바르지 않습니다.")
	ErrInvalidToken       = errors.New("유효하지 않은 token입니다.")
	ErrUserNotFound       = errors.New("사용자를 찾을 수 없습니다.")

	// ErrMailDelivery marks a failed outbound send. It is a soft failure:
	// the preceding DB mutation is not rolled back.
	ErrMailDelivery = errors.New("메일 전송에 실패했습니다.")
)

// ValidationError carries a safe-to-display message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) error { return &ValidationError{Message: msg} }
