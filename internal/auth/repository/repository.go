package repository

import (
	"context"

	authdomain "authsvc/internal/auth/domain"
)

// UserRepository abstracts user persistence. Lookups return (nil, nil) when no
// row matches; errors are reserved for the store itself failing.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
}
