package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"todo_backend/internal/feature/todo/domain"
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
	"todo_backend/internal/platform/db"
)

// TodoModel はtodosテーブルの行です。
type TodoModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"not null;index"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (TodoModel) TableName() string {
	return "todos"
}

func toModel(e entity.Todo) TodoModel {
	return TodoModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		Completed:   e.Completed,
		CreatedAt:   e.CreatedAt,
	}
}

func (m TodoModel) toEntity() entity.Todo {
	return entity.Todo{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

type todoGorm struct {
	db *gorm.DB
}

var _ usecase.TodoRepository = (*todoGorm)(nil)

func NewTodoGorm(db *gorm.DB) *todoGorm {
	return &todoGorm{db: db}
}

// owned はid・所有者で絞り込んだクエリを返します。
func owned(tx *gorm.DB, id, ownerID uint) *gorm.DB {
	return tx.Where("id = ? AND user_id = ?", id, ownerID)
}

func (r *todoGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Todo, error) {
	var rows []TodoModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Todo, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *todoGorm) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Todo, error) {
	var m TodoModel
	if err := owned(r.db.WithContext(ctx), id, ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	t := m.toEntity()
	return &t, nil
}

func (r *todoGorm) Create(ctx context.Context, t *entity.Todo) error {
	t.Completed = false
	t.CreatedAt = time.Now().UTC()

	m := toModel(*t)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	return nil
}

// Update は同一トランザクション内で所有確認と更新を行います。
func (r *todoGorm) Update(ctx context.Context, id, ownerID uint, patch entity.TodoPatch) (*entity.Todo, error) {
	var updated entity.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m TodoModel
		if err := owned(tx, id, ownerID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTodoNotFound
			}
			return err
		}

		updated = m.toEntity()
		patch.Apply(&updated)

		return tx.Model(&m).Select("title", "description", "completed").Updates(TodoModel{
			Title:       updated.Title,
			Description: updated.Description,
			Completed:   updated.Completed,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *todoGorm) Delete(ctx context.Context, id, ownerID uint) error {
	res := owned(r.db.WithContext(ctx), id, ownerID).Delete(&TodoModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// Reset は全todoを削除し、IDの採番を1から再開します（テスト専用）。
func (r *todoGorm) Reset(ctx context.Context) error {
	return db.Truncate(ctx, r.db, "todos")
}
