package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/feature/todo/domain"
	"todo_backend/internal/feature/todo/domain/entity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockTodoUsecase is a mock implementation of the TodoUsecase interface.
type mockTodoUsecase struct {
	ListFunc   func(ctx context.Context) ([]entity.Todo, error)
	GetFunc    func(ctx context.Context, id uint) (*entity.Todo, error)
	CreateFunc func(ctx context.Context, title, description string) (*entity.Todo, error)
	UpdateFunc func(ctx context.Context, id uint, patch entity.TodoPatch) (*entity.Todo, error)
	DeleteFunc func(ctx context.Context, id uint) error
}

func (m *mockTodoUsecase) List(ctx context.Context) ([]entity.Todo, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []entity.Todo{}, nil
}

func (m *mockTodoUsecase) Get(ctx context.Context, id uint) (*entity.Todo, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrTodoNotFound
}

func (m *mockTodoUsecase) Create(ctx context.Context, title, description string) (*entity.Todo, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, title, description)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoUsecase) Update(ctx context.Context, id uint, patch entity.TodoPatch) (*entity.Todo, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, domain.ErrTodoNotFound
}

func (m *mockTodoUsecase) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.ErrTodoNotFound
}

var createdAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func setupRouter(uc TodoUsecase) *gin.Engine {
	h := NewTodoHandler(uc)
	r := gin.New()
	r.GET("/todos", h.List)
	r.GET("/todos/:id", h.Get)
	r.POST("/todos", h.Create)
	r.PUT("/todos/:id", h.Update)
	r.DELETE("/todos/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTodoHandler_List(t *testing.T) {
	t.Run("returns todos as array", func(t *testing.T) {
		uc := &mockTodoUsecase{
			ListFunc: func(context.Context) ([]entity.Todo, error) {
				return []entity.Todo{
					{ID: 1, UserID: 2, Title: "a", CreatedAt: createdAt},
					{ID: 4, UserID: 2, Title: "b", Completed: true, CreatedAt: createdAt},
				}, nil
			},
		}

		w := serve(setupRouter(uc), http.MethodGet, "/todos", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[
			{"id":1,"userId":2,"title":"a","description":"","completed":false,"createdAt":"2024-05-01T09:00:00.000Z"},
			{"id":4,"userId":2,"title":"b","description":"","completed":true,"createdAt":"2024-05-01T09:00:00.000Z"}
		]`, w.Body.String())
	})

	t.Run("empty list", func(t *testing.T) {
		w := serve(setupRouter(&mockTodoUsecase{}), http.MethodGet, "/todos", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("missing principal", func(t *testing.T) {
		uc := &mockTodoUsecase{
			ListFunc: func(context.Context) ([]entity.Todo, error) { return nil, domain.ErrAuthenticationRequired },
		}

		w := serve(setupRouter(uc), http.MethodGet, "/todos", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"authentication required"}`, w.Body.String())
	})
}

func TestTodoHandler_Get(t *testing.T) {
	uc := &mockTodoUsecase{
		GetFunc: func(_ context.Context, id uint) (*entity.Todo, error) {
			if id == 7 {
				return &entity.Todo{ID: 7, UserID: 1, Title: "mine", CreatedAt: createdAt}, nil
			}
			return nil, domain.ErrTodoNotFound
		},
	}
	r := setupRouter(uc)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"found", "/todos/7", http.StatusOK, `{"id":7,"userId":1,"title":"mine","description":"","completed":false,"createdAt":"2024-05-01T09:00:00.000Z"}`},
		{"not found", "/todos/8", http.StatusNotFound, `{"message":"todo not found"}`},
		{"non-numeric id", "/todos/abc", http.StatusNotFound, `{"message":"todo not found"}`},
		{"negative id", "/todos/-1", http.StatusNotFound, `{"message":"todo not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestTodoHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createFunc func(ctx context.Context, title, description string) (*entity.Todo, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"title":"buy milk","description":"2L"}`,
			createFunc: func(_ context.Context, title, description string) (*entity.Todo, error) {
				return &entity.Todo{ID: 1, UserID: 3, Title: title, Description: description, CreatedAt: createdAt}, nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":1,"userId":3,"title":"buy milk","description":"2L","completed":false,"createdAt":"2024-05-01T09:00:00.000Z"}`,
		},
		{
			name: "missing title",
			body: `{"description":"no title"}`,
			createFunc: func(_ context.Context, title, _ string) (*entity.Todo, error) {
				if title != "" {
					return nil, errors.New("unexpected title")
				}
				return nil, domain.ErrTitleRequired
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"title is required"}`,
		},
		{
			name:       "malformed body",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"invalid request body"}`,
		},
		{
			name: "store failure",
			body: `{"title":"x"}`,
			createFunc: func(context.Context, string, string) (*entity.Todo, error) {
				return nil, errors.New("failed to create todo: disk full")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(setupRouter(&mockTodoUsecase{CreateFunc: tt.createFunc}), http.MethodPost, "/todos", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestTodoHandler_Update(t *testing.T) {
	t.Run("only supplied fields reach the usecase", func(t *testing.T) {
		uc := &mockTodoUsecase{
			UpdateFunc: func(_ context.Context, id uint, patch entity.TodoPatch) (*entity.Todo, error) {
				assert.Equal(t, uint(2), id)
				assert.Nil(t, patch.Title)
				assert.Nil(t, patch.Description)
				require.NotNil(t, patch.Completed)
				return &entity.Todo{ID: 2, UserID: 1, Title: "t", Completed: *patch.Completed, CreatedAt: createdAt}, nil
			},
		}

		w := serve(setupRouter(uc), http.MethodPut, "/todos/2", `{"completed":true}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["completed"])
		assert.Equal(t, "t", body["title"])
	})

	t.Run("empty title is passed as supplied", func(t *testing.T) {
		uc := &mockTodoUsecase{
			UpdateFunc: func(_ context.Context, _ uint, patch entity.TodoPatch) (*entity.Todo, error) {
				require.NotNil(t, patch.Title)
				return nil, domain.ErrTitleRequired
			},
		}

		w := serve(setupRouter(uc), http.MethodPut, "/todos/2", `{"title":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"title is required"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		w := serve(setupRouter(&mockTodoUsecase{}), http.MethodPut, "/todos/2", `{"completed":true}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id checked before body", func(t *testing.T) {
		w := serve(setupRouter(&mockTodoUsecase{}), http.MethodPut, "/todos/xyz", `{"title":`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"todo not found"}`, w.Body.String())
	})
}

func TestTodoHandler_Delete(t *testing.T) {
	t.Run("success has no body", func(t *testing.T) {
		var deleted uint
		uc := &mockTodoUsecase{
			DeleteFunc: func(_ context.Context, id uint) error {
				deleted = id
				return nil
			},
		}

		w := serve(setupRouter(uc), http.MethodDelete, "/todos/5", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, uint(5), deleted)
	})

	t.Run("not found", func(t *testing.T) {
		w := serve(setupRouter(&mockTodoUsecase{}), http.MethodDelete, "/todos/5", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"todo not found"}`, w.Body.String())
	})
}
