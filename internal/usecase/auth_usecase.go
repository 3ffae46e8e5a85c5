package usecase

import (
	"errors"
	"fmt"
	"strings"

	"careernav/internal/auth"
	"careernav/internal/dto"
	"careernav/internal/model"
	"careernav/internal/repository"
	"careernav/internal/util"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthUsecase is session scaffolding: register/login plus a bearer token.
// Most of the product works anonymously; the token only associates resumes
// and interviews with a user id.
type AuthUsecase struct {
	store  repository.Store
	tokens *auth.TokenService
}

func NewAuthUsecase(store repository.Store, tokens *auth.TokenService) *AuthUsecase {
	return &AuthUsecase{store: store, tokens: tokens}
}

func (uc *AuthUsecase) Register(username, password string) (*dto.AuthResponse, error) {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(username) == "" {
		fieldErrors["username"] = "required"
	}
	if len(password) < 6 {
		fieldErrors["password"] = "must be at least 6 characters"
	}
	if len(fieldErrors) > 0 {
		return nil, util.NewFormError("invalid registration input", fieldErrors)
	}

	if _, err := uc.store.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Username: username, Password: hash}
	if err := uc.store.CreateUser(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return uc.issue(user)
}

func (uc *AuthUsecase) Login(username, password string) (*dto.AuthResponse, error) {
	user, err := uc.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return uc.issue(user)
}

func (uc *AuthUsecase) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{UserID: user.ID, Username: user.Username, Token: token}, nil
}
