package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"muroom/internal/models"
	"muroom/internal/repositories"
	"muroom/internal/utils"
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	AccessAccount(ctx context.Context, token string) (*models.User, error)
}

type passwordResetService struct {
	repo   repositories.UserRepository
	tokens *TokenService
	emails EmailService
}

func NewPasswordResetService(repo repositories.UserRepository, tokens *TokenService, emails EmailService) PasswordResetService {
	return &passwordResetService{
		repo:   repo,
		tokens: tokens,
		emails: emails,
	}
}

// RequestReset stores a fresh reset code on the user record and mails a link
// wrapping it in a signed token. The code stays valid until consumed or until
// the token expires.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := utils.NewResetCode(16)
	if err != nil {
		return err
	}
	if err := s.repo.SetResetCode(ctx, user.ID.Hex(), code); err != nil {
		return err
	}

	token, err := s.tokens.SignReset(code)
	if err != nil {
		return err
	}
	if err := s.emails.SendPasswordResetEmail(user.Email, token); err != nil {
		log.Printf("[password-reset] send reset mail to %s failed: %v", user.Email, err)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// AccessAccount verifies the reset token and consumes the code in a single
// atomic find-and-clear, so a second attempt with the same token fails.
func (s *passwordResetService) AccessAccount(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.VerifyReset(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.ConsumeResetCode(ctx, claims.ResetCode)
	if err != nil {
		// already consumed codes look exactly like bad tokens
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
