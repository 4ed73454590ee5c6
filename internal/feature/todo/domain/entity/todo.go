// Package entity はtodoフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Todo は1人のユーザーが所有するタスクです。
type Todo struct {
	ID          uint
	UserID      uint
	Title       string
	Description string
	Completed   bool
	// CreatedAt は作成時にストアが設定し、以後変更されません。
	CreatedAt time.Time
}

// TodoPatch は部分更新の内容です。nilのフィールドは変更しません。
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply は指定されたフィールドだけをtへ上書きします。
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
