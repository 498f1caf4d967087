package usecase

import (
	"context"

	authdomain "authsvc/internal/auth/domain"
	authdto "authsvc/internal/auth/dto"
)

// AuthUsecase owns the credential lifecycle: registration, login, refresh
// exchange and resolving a bearer token back to its user.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, error)
	Login(ctx context.Context, email, password string) (*authdomain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*authdomain.TokenPair, error)
	ResolveToken(ctx context.Context, accessToken string) (*authdomain.User, error)
}
