// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"todo_backend/internal/feature/auth/domain"
	"todo_backend/internal/feature/auth/domain/entity"
)

// dummyHash is compared against when the email is unknown so that both
// login failure paths run a bcrypt comparison.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create assigns the next ID and stores the user.
	// It returns domain.ErrUserAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns domain.ErrUserNotFound if no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns domain.ErrUserNotFound if no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher hashes and verifies passwords (platform/password).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrCredentialsRequired
	}

	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrUserAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}

	// 同時登録の競合はストア側で検出される
	if err := u.users.Create(ctx, &entity.User{Email: email, PasswordHash: hashed}); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrCredentialsRequired
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す
	matched := u.hasher.Compare(passwordHash, password)
	if user == nil || !matched {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
