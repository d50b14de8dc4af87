package usecase

import (
	"context"
	"fmt"
	"messadmin/domain"
	"messadmin/middleware"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	userRepo domain.UserRepo
	TimeOut  time.Duration
}

func NewAuthUseCase(repo domain.UserRepo, timeOut time.Duration) domain.AuthUseCase {
	return &authUseCase{
		userRepo: repo,
		TimeOut:  timeOut,
	}
}

func (au *authUseCase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := au.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	// The login form carries the portal it was submitted from; an account can
	// only enter its own portal.
	if req.Role != "" && !strings.EqualFold(req.Role, user.Role) {
		return nil, fmt.Errorf("invalid username or password")
	}

	token, err := middleware.GenerateJWT(user.UserID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("could not issue token: %w", err)
	}

	return &domain.LoginResponse{
		Token:              token,
		TokenType:          "Bearer",
		ExpiresIn:          int((24 * time.Hour).Seconds()),
		UserID:             user.UserID,
		Username:           user.Username,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

func (au *authUseCase) ChangePassword(ctx context.Context, userID int, req *domain.ChangePasswordRequest) error {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return err
	}

	user, err := au.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}
	return au.userRepo.ChangePassword(ctx, userID, string(hashed))
}

func (au *authUseCase) Profile(ctx context.Context, userID int) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.userRepo.FindUserByID(ctx, userID)
}
