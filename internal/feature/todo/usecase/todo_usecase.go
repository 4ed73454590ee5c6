// Package usecase はtodo操作のビジネスロジックを実装します。
// すべての操作はコンテキストのプリンシパルを所有者として扱い、
// 他ユーザーのtodoは存在しないものとして振る舞います。
package usecase

import (
	"context"
	"errors"
	"fmt"

	authdomain "todo_backend/internal/feature/auth/domain"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/todo/domain"
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/shared/principal"
)

// TodoRepository はtodoの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 検索・更新・削除はすべて(id, ownerID)の組で行います。
type TodoRepository interface {
	// ListByOwner は所有者のtodoをID昇順（作成順）で返します。
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Todo, error)
	// FindByIDAndOwner は該当がなければdomain.ErrTodoNotFoundを返します。
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Todo, error)
	// Create はIDと作成日時を採番し、Completedをfalseにして保存します。
	Create(ctx context.Context, todo *entity.Todo) error
	// Update はpatchで指定されたフィールドだけを更新し、更新後のtodoを返します。
	Update(ctx context.Context, id, ownerID uint, patch entity.TodoPatch) (*entity.Todo, error)
	// Delete は該当がなければdomain.ErrTodoNotFoundを返します。
	Delete(ctx context.Context, id, ownerID uint) error
}

// UserLookup はtodo作成時に所有者の存在を確認します。
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

type todoUsecase struct {
	todos TodoRepository
	users UserLookup
}

// NewTodoUsecase はtodoUsecaseの新しいインスタンスを生成します。
func NewTodoUsecase(todos TodoRepository, users UserLookup) *todoUsecase {
	return &todoUsecase{todos: todos, users: users}
}

// owner はコンテキストから認証済みユーザーIDを取り出します。
func owner(ctx context.Context) (uint, error) {
	p, ok := principal.FromContext(ctx)
	if !ok || p.ID == 0 {
		return 0, domain.ErrAuthenticationRequired
	}
	return p.ID, nil
}

// List は呼び出し元ユーザーのtodoを作成順で返します。
func (u *todoUsecase) List(ctx context.Context) ([]entity.Todo, error) {
	ownerID, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	todos, err := u.todos.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []entity.Todo{}
	}
	return todos, nil
}

// Get は呼び出し元ユーザーが所有するtodoを1件返します。
func (u *todoUsecase) Get(ctx context.Context, id uint) (*entity.Todo, error) {
	ownerID, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	return u.todos.FindByIDAndOwner(ctx, id, ownerID)
}

// Create は呼び出し元ユーザーを所有者とするtodoを作成します。
func (u *todoUsecase) Create(ctx context.Context, title, description string) (*entity.Todo, error) {
	ownerID, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	// トークンが有効でもユーザーが消えている場合がある（揮発ストアの再起動後など）
	if _, err := u.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return nil, domain.ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	todo := &entity.Todo{
		UserID:      ownerID,
		Title:       title,
		Description: description,
	}
	if err := u.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// Update は指定されたフィールドだけを更新します。
// 空文字のタイトルは指定なしとは区別され、バリデーションエラーになります。
func (u *todoUsecase) Update(ctx context.Context, id uint, patch entity.TodoPatch) (*entity.Todo, error) {
	ownerID, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	return u.todos.Update(ctx, id, ownerID, patch)
}

// Delete は呼び出し元ユーザーが所有するtodoを削除します。
func (u *todoUsecase) Delete(ctx context.Context, id uint) error {
	ownerID, err := owner(ctx)
	if err != nil {
		return err
	}
	return u.todos.Delete(ctx, id, ownerID)
}
