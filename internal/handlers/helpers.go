package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"muroom/internal/services"
)

// respondError maps each service error kind onto one status code. The body
// shape stays {"error": <message>} everywhere; unexpected errors are logged
// and answered with the generic message only.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrEmailTaken.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidToken.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrUserNotFound.Error()})
	default:
		log.Printf("[http] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "뭔가 잘못 되었습니다. 서버 콘솔을 확인해주세요."})
	}
}

// bindErrorMessage translates gin binding failures into the user-facing
// Korean validation messages.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Email":
				return "이메일 형식이 맞지 않습니다. 다시 입력해주세요."
			case "Password":
				if fe.Tag() == "min" {
					return "비밀번호가 너무 짧습니다. 8자 이상으로 다시 입력해주세요."
				}
				return "비밀번호를 입력해주세요."
			case "Username":
				return "사용자 이름 형식이 맞지 않습니다."
			}
		}
	}
	return "요청 형식이 올바르지 않습니다."
}
