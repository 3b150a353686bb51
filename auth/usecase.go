package auth

import (
	"context"
	"errors"
	"time"

	"moviestore/errs"
)

var (
	ErrInvalidCredentials  = errs.Errorf(errs.EUNAUTHORIZED, "auth: invalid credentials")
	ErrAccountLocked       = errs.Errorf(errs.EUNAUTHORIZED, "auth: account temporarily locked")
	ErrInvalidRefreshToken = errs.Errorf(errs.EUNAUTHORIZED, "auth: invalid refresh token")
	ErrAccountNotFound     = errs.Errorf(errs.ENOTFOUND, "auth: account not found")
)

type Service interface {
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// Account is the identity a token is issued for.
type Account struct {
	Username     string
	PasswordHash string
}

type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (Account, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, username string) (LoginAttempt, error)
	Save(ctx context.Context, username string, attempt LoginAttempt) error
	Reset(ctx context.Context, username string) error
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
}

type TokenProvider interface {
	GenerateAccessToken(a Account) (string, error)
	GenerateRefreshToken(a Account) (string, error)
	ParseRefreshToken(refreshToken string) (Account, error)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Option func(uc *Usecase)

// WithLockout jails an account for jail after maxRetries consecutive failures.
func WithLockout(maxRetries int, jail time.Duration) Option {
	return func(uc *Usecase) {
		if maxRetries > 0 {
			uc.maxRetries = maxRetries
		}
		if jail > 0 {
			uc.jailDuration = jail
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *Usecase) {
		uc.now = now
	}
}

type Usecase struct {
	accounts       AccountRepository
	attemptsRepo   LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	maxRetries     int
	jailDuration   time.Duration
	now            func() time.Time
}

func NewUsecase(
	accounts AccountRepository,
	attemptsRepo LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
	opts ...Option,
) *Usecase {
	uc := &Usecase{
		accounts:       accounts,
		attemptsRepo:   attemptsRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		maxRetries:     5,
		jailDuration:   15 * time.Minute,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) Login(ctx context.Context, username, password string) (TokenPair, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return TokenPair{}, ErrInvalidCredentials
	}

	attempt, err := uc.attemptsRepo.Get(ctx, username)
	if err != nil {
		return TokenPair{}, err
	}

	if !attempt.JailedUntil.IsZero() {
		if attempt.JailedUntil.After(uc.now()) {
			return TokenPair{}, ErrAccountLocked
		}
		attempt.JailedUntil = time.Time{}
		attempt.FailedCount = 0
		if err := uc.attemptsRepo.Save(ctx, username, attempt); err != nil {
			return TokenPair{}, err
		}
	}

	a, err := uc.accounts.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return TokenPair{}, err
		}
		if err := uc.recordFailure(ctx, username, attempt); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := uc.passwordHasher.Compare(a.PasswordHash, password); err != nil {
		if err := uc.recordFailure(ctx, username, attempt); err != nil {
			return TokenPair{}, err
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := uc.attemptsRepo.Reset(ctx, username); err != nil {
		return TokenPair{}, err
	}

	return uc.issue(a)
}

func (uc *Usecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	a, err := uc.tokenProvider.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	// the account may have been removed since the token was issued
	if _, err := uc.accounts.GetByUsername(ctx, a.Username); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}

	return uc.issue(a)
}

func (uc *Usecase) issue(a Account) (TokenPair, error) {
	accessToken, err := uc.tokenProvider.GenerateAccessToken(a)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := uc.tokenProvider.GenerateRefreshToken(a)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *Usecase) recordFailure(ctx context.Context, username string, attempt LoginAttempt) error {
	attempt.FailedCount++
	if attempt.FailedCount >= uc.maxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.jailDuration)
	}
	return uc.attemptsRepo.Save(ctx, username, attempt)
}
