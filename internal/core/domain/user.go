package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User - зарегистрированный пользователь портала.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// RegistrationInput - данные формы регистрации.
type RegistrationInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Normalize обрезает пробелы в имени и email. Пароли не трогаем.
func (in RegistrationInput) Normalize() RegistrationInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// NewUser создает пользователя с bcrypt-хэшем пароля.
func NewUser(username, email, password string, isAdmin bool) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword сравнивает пароль с сохраненным хэшем.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanDelete - удалять объявление может его владелец или администратор.
func (u *User) CanDelete(h House) bool {
	if u.IsAdmin {
		return true
	}
	return h.OwnerID != nil && *h.OwnerID == u.ID
}

// Profile - страница профиля: свои объявления и избранное.
type Profile struct {
	User      User
	Houses    []House
	Favorites []House
}
