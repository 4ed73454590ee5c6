// Package graphql はREST APIと同じユースケースをGraphQLとして公開します。
// 認可はユースケース側で行うため、リゾルバーはコンテキストをそのまま渡します。
package graphql

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/graphql-go/graphql"

	authdomain "todo_backend/internal/feature/auth/domain"
	tododomain "todo_backend/internal/feature/todo/domain"
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/transport/http/dto"
	"todo_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースインターフェースです。
type AuthUsecase interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// TodoUsecase はtodo操作のユースケースインターフェースです。
type TodoUsecase interface {
	List(ctx context.Context) ([]entity.Todo, error)
	Get(ctx context.Context, id uint) (*entity.Todo, error)
	Create(ctx context.Context, title, description string) (*entity.Todo, error)
	Update(ctx context.Context, id uint, patch entity.TodoPatch) (*entity.Todo, error)
	Delete(ctx context.Context, id uint) error
}

type resolver struct {
	auth  AuthUsecase
	todos TodoUsecase
}

var todoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Todo",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"completed":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthResponse",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var messageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Message",
	Fields: graphql.Fields{
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

func credentialsInput(name string) *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: name,
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
}

var (
	registerInputType = credentialsInput("RegisterInput")
	loginInputType    = credentialsInput("LoginInput")
)

var createTodoInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateTodoInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var updateTodoInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateTodoInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"completed":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

// NewSchema はユースケースをリゾルバーに結びつけたスキーマを構築します。
func NewSchema(auth AuthUsecase, todos TodoUsecase) (graphql.Schema, error) {
	r := &resolver{auth: auth, todos: todos}
	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
	inputArg := func(t graphql.Input) *graphql.ArgumentConfig {
		return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"todos": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Resolve: r.listTodos,
			},
			"todo": &graphql.Field{
				Type:    graphql.NewNonNull(todoType),
				Args:    idArg,
				Resolve: r.getTodo,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type:    graphql.NewNonNull(messageType),
				Args:    graphql.FieldConfigArgument{"input": inputArg(registerInputType)},
				Resolve: r.register,
			},
			"login": &graphql.Field{
				Type:    graphql.NewNonNull(authResponseType),
				Args:    graphql.FieldConfigArgument{"input": inputArg(loginInputType)},
				Resolve: r.login,
			},
			"createTodo": &graphql.Field{
				Type:    graphql.NewNonNull(todoType),
				Args:    graphql.FieldConfigArgument{"input": inputArg(createTodoInputType)},
				Resolve: r.createTodo,
			},
			"updateTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"id":    idArg["id"],
					"input": inputArg(updateTodoInputType),
				},
				Resolve: r.updateTodo,
			},
			"deleteTodo": &graphql.Field{
				Type:    graphql.NewNonNull(messageType),
				Args:    idArg,
				Resolve: r.deleteTodo,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// publicError はクライアントに返すメッセージだけを持つエラーに変換します。
// 内部エラーの詳細はログにのみ出力します。
func publicError(p graphql.ResolveParams, err error) error {
	if apperr.KindOf(err) == apperr.KindInternal {
		slog.ErrorContext(p.Context, "graphql resolver failed", "field", p.Info.FieldName, "error", err)
	}
	return errors.New(apperr.PublicMessage(err))
}

// todoID はID引数をuintとして読み取ります。数値でなければ該当なしとして扱います。
func todoID(args map[string]interface{}) (uint, error) {
	s, _ := args["id"].(string)
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, tododomain.ErrTodoNotFound
	}
	return uint(id), nil
}

func inputOf(args map[string]interface{}) map[string]interface{} {
	in, _ := args["input"].(map[string]interface{})
	return in
}

// optString は入力に含まれる文字列フィールドを返します。未指定やnullはnilです。
func optString(in map[string]interface{}, key string) *string {
	if s, ok := in[key].(string); ok {
		return &s
	}
	return nil
}

func todoToMap(t entity.Todo) map[string]interface{} {
	return map[string]interface{}{
		"id":          strconv.FormatUint(uint64(t.ID), 10),
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"userId":      strconv.FormatUint(uint64(t.UserID), 10),
		"createdAt":   dto.FormatTimestamp(t.CreatedAt),
	}
}

func (r *resolver) register(p graphql.ResolveParams) (interface{}, error) {
	in := inputOf(p.Args)
	email, _ := in["email"].(string)
	password, _ := in["password"].(string)
	if err := r.auth.Register(p.Context, email, password); err != nil {
		return nil, publicError(p, err)
	}
	return map[string]interface{}{"message": authdomain.MsgRegistered}, nil
}

func (r *resolver) login(p graphql.ResolveParams) (interface{}, error) {
	in := inputOf(p.Args)
	email, _ := in["email"].(string)
	password, _ := in["password"].(string)
	token, err := r.auth.Login(p.Context, email, password)
	if err != nil {
		return nil, publicError(p, err)
	}
	return map[string]interface{}{"token": token}, nil
}

func (r *resolver) listTodos(p graphql.ResolveParams) (interface{}, error) {
	todos, err := r.todos.List(p.Context)
	if err != nil {
		return nil, publicError(p, err)
	}
	out := make([]interface{}, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoToMap(t))
	}
	return out, nil
}

func (r *resolver) getTodo(p graphql.ResolveParams) (interface{}, error) {
	id, err := todoID(p.Args)
	if err != nil {
		return nil, publicError(p, err)
	}
	t, err := r.todos.Get(p.Context, id)
	if err != nil {
		return nil, publicError(p, err)
	}
	return todoToMap(*t), nil
}

func (r *resolver) createTodo(p graphql.ResolveParams) (interface{}, error) {
	in := inputOf(p.Args)
	title, _ := in["title"].(string)
	description, _ := in["description"].(string)
	t, err := r.todos.Create(p.Context, title, description)
	if err != nil {
		return nil, publicError(p, err)
	}
	return todoToMap(*t), nil
}

func (r *resolver) updateTodo(p graphql.ResolveParams) (interface{}, error) {
	id, err := todoID(p.Args)
	if err != nil {
		return nil, publicError(p, err)
	}
	in := inputOf(p.Args)
	patch := entity.TodoPatch{
		Title:       optString(in, "title"),
		Description: optString(in, "description"),
	}
	if c, ok := in["completed"].(bool); ok {
		patch.Completed = &c
	}
	t, err := r.todos.Update(p.Context, id, patch)
	if err != nil {
		return nil, publicError(p, err)
	}
	return todoToMap(*t), nil
}

func (r *resolver) deleteTodo(p graphql.ResolveParams) (interface{}, error) {
	id, err := todoID(p.Args)
	if err != nil {
		return nil, publicError(p, err)
	}
	if err := r.todos.Delete(p.Context, id); err != nil {
		return nil, publicError(p, err)
	}
	return map[string]interface{}{"message": tododomain.MsgDeleted}, nil
}
