package usecase

import (
	"context"
	"fmt"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
)

type RegisterUserUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewRegisterUserUseCase(userRepo port.UserRepositoryPort) *RegisterUserUseCase {
	return &RegisterUserUseCase{userRepo: userRepo}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input domain.RegistrationInput) (*domain.User, error) {
	input = input.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"username": input.Username,
		"email":    input.Email,
	})
	ucLogger.Info("Use case started: attempting to register user", nil)

	if input.Username == "" || input.Email == "" || input.Password == "" {
		ucLogger.Warn("Registration failed: required fields are empty", nil)
		return nil, domain.ErrIncompleteSignup
	}
	if input.Password != input.ConfirmPassword {
		ucLogger.Warn("Registration failed: passwords do not match", nil)
		return nil, domain.ErrPasswordMismatch
	}

	existing, err := uc.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing username", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existing != nil {
		ucLogger.Warn("Registration failed: username already in use", nil)
		return nil, domain.ErrUsernameInUse
	}

	existing, err = uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existing != nil {
		ucLogger.Warn("Registration failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	return uc.create(ctx, ucLogger, input.Username, input.Email, input.Password, false)
}

// EnsureAdmin создает администратора при старте, если пользователя с таким именем еще нет.
func (uc *RegisterUserUseCase) EnsureAdmin(ctx context.Context, username, email, password string) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "EnsureAdmin",
		"username": username,
	})

	existing, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		ucLogger.Error("Repository failed while looking up admin", err, nil)
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		ucLogger.Debug("Admin user already exists", nil)
		return existing, nil
	}
	return uc.create(ctx, ucLogger, username, email, password, true)
}

func (uc *RegisterUserUseCase) create(ctx context.Context, ucLogger port.LoggerPort, username, email, password string, isAdmin bool) (*domain.User, error) {
	// хэширование пароля происходит внутри NewUser
	user, err := domain.NewUser(username, email, password, isAdmin)
	if err != nil {
		ucLogger.Error("Failed to create new user domain object", err, nil)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}
	user.ID = id

	ucLogger.Info("Use case finished: user registered successfully", port.Fields{"user_id": id, "is_admin": isAdmin})
	return user, nil
}
