// Package handler はtodoフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"todo_backend/internal/feature/todo/domain"
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/transport/http/dto"
	"todo_backend/internal/platform/http/respond"
)

// TodoUsecase はtodo操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TodoUsecase interface {
	List(ctx context.Context) ([]entity.Todo, error)
	Get(ctx context.Context, id uint) (*entity.Todo, error)
	Create(ctx context.Context, title, description string) (*entity.Todo, error)
	Update(ctx context.Context, id uint, patch entity.TodoPatch) (*entity.Todo, error)
	Delete(ctx context.Context, id uint) error
}

// TodoHandler はtodoのHTTPリクエストを処理します。
// 認証はルーターのAuthRequiredとユースケースの両方で確認されます。
type TodoHandler struct {
	uc TodoUsecase
}

// NewTodoHandler は指定されたusecaseでTodoHandlerの新しいインスタンスを生成します。
func NewTodoHandler(uc TodoUsecase) *TodoHandler {
	return &TodoHandler{uc: uc}
}

// bindID は:idパスパラメータをuintとして読み取ります。
// 数値でないIDはどのtodoにも一致しないため404として扱います。
func bindID(c *gin.Context) (uint, bool) {
	var id uint
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respond.Error(c, domain.ErrTodoNotFound)
		return 0, false
	}
	return id, true
}

// List は認証ユーザーのtodo一覧を返します。
//
//	@Summary		List todos
//	@Tags			todos
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.TodoRes
//	@Failure		401	{object}	respond.MessageResponse
//	@Router			/todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.uc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(todos))
}

// Get は認証ユーザーのtodoを1件返します。
//
//	@Summary		Get a todo
//	@Tags			todos
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"todo id"
//	@Success		200	{object}	dto.TodoRes
//	@Failure		401	{object}	respond.MessageResponse
//	@Failure		404	{object}	respond.MessageResponse
//	@Router			/todos/{id} [get]
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	todo, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*todo))
}

// Create はtodoを作成します。
//
//	@Summary		Create a todo
//	@Tags			todos
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		dto.CreateTodoReq	true	"todo"
//	@Success		201		{object}	dto.TodoRes
//	@Failure		400		{object}	respond.MessageResponse
//	@Failure		401		{object}	respond.MessageResponse
//	@Router			/todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoReq
	if !respond.BindJSON(c, &req) {
		return
	}
	todo, err := h.uc.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(*todo))
}

// Update は指定されたフィールドだけを更新します。
//
//	@Summary		Update a todo
//	@Tags			todos
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int					true	"todo id"
//	@Param			body	body		dto.UpdateTodoReq	true	"fields to change"
//	@Success		200		{object}	dto.TodoRes
//	@Failure		400		{object}	respond.MessageResponse
//	@Failure		401		{object}	respond.MessageResponse
//	@Failure		404		{object}	respond.MessageResponse
//	@Router			/todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateTodoReq
	if !respond.BindJSON(c, &req) {
		return
	}
	todo, err := h.uc.Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*todo))
}

// Delete はtodoを削除します。成功時はボディなしの204を返します。
//
//	@Summary		Delete a todo
//	@Tags			todos
//	@Security		BearerAuth
//	@Param			id	path	int	true	"todo id"
//	@Success		204
//	@Failure		401	{object}	respond.MessageResponse
//	@Failure		404	{object}	respond.MessageResponse
//	@Router			/todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
