package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"exampocket-backend/internal/usecase"
)

// Admin - единственный общий секрет. Если задан bcrypt-хеш, он важнее открытого пароля.
type Admin struct {
	password     []byte
	passwordHash []byte
}

func NewAdmin(password, passwordHash string) usecase.Admin {
	a := &Admin{}
	if password != "" {
		a.password = []byte(password)
	}
	if passwordHash != "" {
		a.passwordHash = []byte(passwordHash)
	}
	return a
}

func (a *Admin) Authenticate(password string) error {
	switch {
	case a.passwordHash != nil:
		if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
			return usecase.ErrInvalidPassword
		}
		return nil
	case a.password != nil:
		if subtle.ConstantTimeCompare(a.password, []byte(password)) != 1 {
			return usecase.ErrInvalidPassword
		}
		return nil
	}
	return usecase.ErrAdminNotConfigured
}
