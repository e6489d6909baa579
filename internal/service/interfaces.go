package service

import (
	"context"

	"github.com/MKhiriev/go-login-service/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, name string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Reset(ctx context.Context, token, newPassword string) error
}

// Notifier delivers account-related messages to users. The password reset
// flow uses it to send the reset link; implementations live outside the
// service package (see internal/mailer).
type Notifier interface {
	SendResetEmail(ctx context.Context, to string, token string) error
}
