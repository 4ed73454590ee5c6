// Package dto はtodoフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"todo_backend/internal/feature/todo/domain/entity"
)

// TimestampLayout はcreatedAtの表現です（UTC、ミリ秒精度のRFC 3339）。
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CreateTodoReq はPOST /todosのリクエストボディです。
type CreateTodoReq struct {
	Title       string `json:"title" example:"buy milk"`
	Description string `json:"description" example:"2 litres"`
}

// UpdateTodoReq はPUT /todos/:idのリクエストボディです。
// 省略されたフィールドは変更されません。
type UpdateTodoReq struct {
	Title       *string `json:"title,omitempty" example:"buy oat milk"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty" example:"true"`
}

// Patch はリクエストをドメインの部分更新に変換します。
func (r UpdateTodoReq) Patch() entity.TodoPatch {
	return entity.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// TodoRes はtodoのレスポンス表現です。
type TodoRes struct {
	ID          uint   `json:"id" example:"1"`
	UserID      uint   `json:"userId" example:"1"`
	Title       string `json:"title" example:"buy milk"`
	Description string `json:"description" example:"2 litres"`
	Completed   bool   `json:"completed" example:"false"`
	CreatedAt   string `json:"createdAt" example:"2024-05-01T09:00:00.000Z"`
}

// FormatTimestamp はtをTimestampLayoutで整形します。
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FromEntity はエンティティをレスポンス表現に変換します。
func FromEntity(t entity.Todo) TodoRes {
	return TodoRes{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
	}
}

// FromEntities は一覧を変換します。空でもnilではなく空スライスを返します。
func FromEntities(ts []entity.Todo) []TodoRes {
	out := make([]TodoRes, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromEntity(t))
	}
	return out
}
