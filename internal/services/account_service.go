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

type AccountService interface {
	PreRegister(ctx context.Context, email, password string) error
	Register(ctx context.Context, token string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, password string) error
	UpdateProfile(ctx context.Context, id string, email, username string) (*models.User, error)
}

type accountService struct {
	repo   repositories.UserRepository
	auth   AuthService
	tokens *TokenService
	emails EmailService
}

func NewAccountService(repo repositories.UserRepository, auth AuthService, tokens *TokenService, emails EmailService) AccountService {
	return &accountService{
		repo:   repo,
		auth:   auth,
		tokens: tokens,
		emails: emails,
	}
}

// PreRegister validates the address is free, then sends a confirmation link
// carrying the pending credentials. No database mutation happens here.
func (s *accountService) PreRegister(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	token, err := s.tokens.SignConfirmation(email, password)
	if err != nil {
		return err
	}

	if err := s.emails.SendConfirmationEmail(email, token); err != nil {
		log.Printf("[account][pre-register] send confirmation to %s failed: %v", email, err)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// Register turns a verified confirmation token into a persisted user and is
// the only place accounts get created. Email uniqueness is re-checked here,
// and the unique index backstops the remaining race.
func (s *accountService) Register(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.VerifyConfirmation(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	existing, err := s.repo.GetByEmail(ctx, claims.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(claims.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        claims.Email,
		Username:     utils.NewUsername(),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Printf("[account][register] created userID=%s username=%s", user.ID.Hex(), user.Username)
	return user, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// unknown email gets the same answer as a wrong password
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		log.Printf("[account][login] password mismatch for userID=%s", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *accountService) UpdateProfile(ctx context.Context, id string, email, username string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.UpdateProfile(ctx, id, email, username)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}
