package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"growthmarket/internal/domain/model"
	"growthmarket/internal/repository"
)

const minPasswordLength = 8

type UserDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

type JwtAccessTokenDTO struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type AuthRegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthLoginInput struct {
	Email    string
	Password string
}

type AuthLoginOutput struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	issuer AccessTokenIssuer
	idGen  IDGenerator
	clock  Clock
	logger *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		idGen:  idGen,
		clock:  clock,
		logger: logger,
	}
}

// 会員登録（USER）
func (u *AuthUsecase) Register(ctx context.Context, in AuthRegisterInput) (UserDTO, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return UserDTO{}, missingField("name")
	}
	if !validEmail(email) {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < minPasswordLength {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	user, err := u.createUser(ctx, name, email, in.Password, model.RoleUser)
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

// ログインしてアクセストークンを返す
func (u *AuthUsecase) Login(ctx context.Context, in AuthLoginInput) (AuthLoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthLoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	//ユーザー取得
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return AuthLoginOutput{}, NewHTTPError(http.StatusForbidden, "user is inactive")
	}

	//パスワード照合（bcrypt）
	if !u.hasher.Verify(in.Password, user.PasswordHash) {
		return AuthLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//last_login更新（失敗してもログインは通す）
	now := u.clock.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := u.users.Update(ctx, user); err != nil {
		u.logger.WarnContext(ctx, "update last login failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return AuthLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthLoginOutput{
		User: toUserDTO(user),
		Token: JwtAccessTokenDTO{
			AccessToken: token,
			ExpiresIn:   int(expiresAt.Sub(now) / time.Second),
		},
	}, nil
}

// 起動時の管理者アカウント。既存ユーザーなら ADMIN に昇格するだけ。
func (u *AuthUsecase) EnsureAdmin(ctx context.Context, name string, email string, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role == model.RoleAdmin {
			return nil
		}
		existing.Role = model.RoleAdmin
		existing.UpdatedAt = u.clock.Now()
		if err := u.users.Update(ctx, existing); err != nil {
			return err
		}
		u.logger.InfoContext(ctx, "user promoted to admin", slog.String("user_id", existing.ID))
		return nil
	}

	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	created, err := u.createUser(ctx, strings.TrimSpace(name), email, password, model.RoleAdmin)
	if err != nil {
		return err
	}
	u.logger.InfoContext(ctx, "admin user created", slog.String("user_id", created.ID))
	return nil
}

func (u *AuthUsecase) createUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "email already registered")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewHTTPError(http.StatusConflict, "email already registered")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
