package usecase

import (
	"context"
	"fmt"

	authdomain "authsvc/internal/auth/domain"
	authdto "authsvc/internal/auth/dto"
	"authsvc/internal/auth/repository"
	"authsvc/internal/auth/token"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo repository.UserRepository
	codec    *token.Codec
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, codec *token.Codec) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		codec:    codec,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, error) {
	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &authdomain.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	// The store's unique index decides duplicates; Create surfaces
	// ErrDuplicateEmail directly.
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*authdomain.TokenPair, error) {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authdomain.ErrInvalidCredentials
	}

	ok, err := repository.CheckPasswordHash(password, user.PasswordHash)
	if err != nil {
		// Corrupt stored hash. Not a wrong password, so do not answer 401.
		return nil, fmt.Errorf("%w: %v", authdomain.ErrHashFormat, err)
	}
	if !ok {
		return nil, authdomain.ErrInvalidCredentials
	}

	return u.issuePair(user.ID)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*authdomain.TokenPair, error) {
	claims, err := u.codec.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	// The presented refresh token keeps its original expiry; issuing a new
	// pair does not extend or revoke it.
	return u.issuePair(user.ID)
}

func (u *authUsecase) ResolveToken(ctx context.Context, accessToken string) (*authdomain.User, error) {
	claims, err := u.codec.Verify(accessToken, token.TypeAccess)
	if err != nil {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	return user, nil
}

func (u *authUsecase) issuePair(userID string) (*authdomain.TokenPair, error) {
	accessToken, err := u.codec.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}

	refreshToken, err := u.codec.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("issuing refresh token: %w", err)
	}

	return &authdomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
