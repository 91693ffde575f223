package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountInactive    = errors.New("account is inactive")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (repository.Employee, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	employees repository.EmployeeRepository
	tokens    jwt.Service
}

func NewAuthUsecase(employees repository.EmployeeRepository, tokens jwt.Service) *Auth {
	return &Auth{employees: employees, tokens: tokens}
}

func (u *Auth) Login(ctx context.Context, email, password string) (repository.Employee, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return repository.Employee{}, TokenPair{}, ErrInvalidCredentials
	}

	emp, err := u.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return repository.Employee{}, TokenPair{}, ErrInvalidCredentials
		}
		return repository.Employee{}, TokenPair{}, ErrInternal
	}
	if !emp.IsActive {
		return repository.Employee{}, TokenPair{}, ErrAccountInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)) != nil {
		return repository.Employee{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := u.issueTokens(emp)
	if err != nil {
		return repository.Employee{}, TokenPair{}, ErrInternal
	}
	emp.PasswordHash = ""
	return emp, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := u.tokens.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}
	if !u.tokens.IsRefreshToken(claims) {
		return TokenPair{}, ErrInvalidToken
	}

	emp, err := u.employees.FindByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, ErrInternal
	}
	if !emp.IsActive {
		return TokenPair{}, ErrAccountInactive
	}

	pair, err := u.issueTokens(emp)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return pair, nil
}

func (u *Auth) issueTokens(emp repository.Employee) (TokenPair, error) {
	access, err := u.tokens.GenerateAccessToken(emp.ID, emp.Email, emp.IsApprover)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := u.tokens.GenerateRefreshToken(emp.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
