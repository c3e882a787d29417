package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
	"github.com/bookorg/bookstore-service/internal/repository"
	"github.com/bookorg/bookstore-service/pkg/auth"
)

type Service struct {
	log    *zap.Logger
	repo   repository.UserRepository
	tokens *auth.TokenManager
}

func NewService(repo repository.UserRepository, tokens *auth.TokenManager, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		tokens: tokens,
	}
}

// FindByUsername fetches the user row and its role rows separately and
// merges them into a principal. No roles is valid, a missing user is not.
func (s *Service) FindByUsername(ctx context.Context, username string) (model.Principal, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return model.Principal{}, err
	}
	roles, err := s.repo.GetRoles(ctx, user.ID)
	if err != nil {
		return model.Principal{}, err
	}
	return model.Principal{
		Username:     user.Username,
		PasswordHash: user.Password,
		Authorities:  roles,
	}, nil
}

// Login verifies the credentials and issues a token. Every failure mode is
// reported as ErrAuthFailed so callers cannot probe for valid usernames
// through error detail.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	principal, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return "", errors.Wrap(errs.ErrAuthFailed, "user not found")
		}
		s.log.Error("login lookup", zap.String("username", username), zap.Error(err))
		return "", errors.Wrap(errs.ErrAuthFailed, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)); err != nil {
		return "", errors.Wrap(errs.ErrAuthFailed, "invalid username or password")
	}

	token, err := s.tokens.Issue(principal.Username, principal.Authorities)
	if err != nil {
		s.log.Error("issue token", zap.Error(err))
		return "", errors.Wrap(errs.ErrAuthFailed, "invalid username or password")
	}
	return token, nil
}

// Register creates the user and its role assignment, then re-fetches the
// principal by username to confirm durability.
func (s *Service) Register(ctx context.Context, username, password, role string) (model.Principal, error) {
	if strings.TrimSpace(username) == "" {
		return model.Principal{}, errors.Wrap(errs.ErrValidation, "username cannot be empty")
	}
	if strings.TrimSpace(password) == "" {
		return model.Principal{}, errors.Wrap(errs.ErrValidation, "password cannot be empty")
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return model.Principal{}, errs.ErrUserConflict
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return model.Principal{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Principal{}, errors.Wrap(err, "hash password")
	}

	user := model.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return model.Principal{}, err
	}
	if err := s.repo.CreateRole(ctx, user.ID, role); err != nil {
		return model.Principal{}, err
	}

	return s.FindByUsername(ctx, username)
}
