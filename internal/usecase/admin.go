package usecase

import "errors"

type Admin interface {
	// Authenticate сравнивает пароль с секретом администратора
	Authenticate(password string) error
}

var (
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAdminNotConfigured = errors.New("admin password not configured")
)
