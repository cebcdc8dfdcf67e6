package user

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alvimrfg/sistema-socio-40graus/internal/api"
	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/auth"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
)

var (
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password")
	ErrUsernameTaken      = apperror.New(http.StatusConflict, "username already taken")
	ErrInvalidRefresh     = apperror.New(http.StatusUnauthorized, "invalid or expired refresh token")
	ErrEmailTaken         = apperror.New(http.StatusConflict, "email already in use")
	ErrWrongPassword      = apperror.New(http.StatusBadRequest, "current password is incorrect")
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
	GetByID(ctx context.Context, id int) (*User, error)

	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	List(ctx context.Context) ([]User, error)
	// Update edits an operator's profile and role. Admins cannot drop their own admin role.
	Update(ctx context.Context, actorID, id int, req UpdateUserRequest) (*User, error)
	// ChangePassword replaces the caller's password after checking the current one.
	ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error
	// Delete removes an operator. Operators cannot delete themselves.
	Delete(ctx context.Context, actorID, id int) error
	// EnsureAdmin creates an admin with the given credentials unless the username is taken.
	EnsureAdmin(ctx context.Context, username, password string) (*User, bool, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		logger.Warn("login rejected", "username", u.Username)
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	logger.Info("operator logged in", "user_id", u.ID, "role", u.Role)
	return resp, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := auth.ParseRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrInvalidRefresh
	}
	if err != nil {
		return nil, err
	}

	return s.issue(u)
}

func (s *service) issue(u *User) (*LoginResponse, error) {
	access, refresh, err := auth.GenerateTokens(u.ID, u.Username, u.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{AccessToken: access, RefreshToken: refresh, User: *u}, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if !auth.ValidRole(req.Role) {
		return nil, apperror.Validation("unknown role %q", req.Role)
	}

	username := strings.TrimSpace(req.Username)
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         req.Role,
	}
	u.Email = normalizeEmail(req.Email)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("operator created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, actorID, id int, req UpdateUserRequest) (*User, error) {
	if !auth.ValidRole(req.Role) {
		return nil, apperror.Validation("unknown role %q", req.Role)
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID == id && u.Role == auth.RoleAdmin && req.Role != auth.RoleAdmin {
		return nil, apperror.Validation("operators cannot remove their own admin role")
	}

	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.Email = normalizeEmail(req.Email)
	u.Role = req.Role

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("operator updated", "user_id", u.ID, "role", u.Role, "by", actorID)
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		logger.Warn("password change rejected", "user_id", userID)
		return ErrWrongPassword
	}
	if len(req.NewPassword) < 6 {
		return apperror.Validation("new password must have at least 6 characters")
	}
	if req.NewPassword == req.CurrentPassword {
		return apperror.Validation("new password must differ from the current one")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	logger.Info("operator password changed", "user_id", userID)
	return nil
}

func (s *service) Delete(ctx context.Context, actorID, id int) error {
	if actorID == id {
		return apperror.Validation("operators cannot delete their own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("operator deleted", "user_id", id, "by", actorID)
	return nil
}

func (s *service) EnsureAdmin(ctx context.Context, username, password string) (*User, bool, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, err
	}

	req := CreateUserRequest{
		Username:  username,
		Password:  password,
		FirstName: "Administrador",
		Role:      auth.RoleAdmin,
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		return nil, false, apperror.Validation("%s", errs[0].Message)
	}

	u, err := s.Create(ctx, req)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func normalizeEmail(raw string) *string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return nil
	}
	return &email
}
