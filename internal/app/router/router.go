package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	gqlapp "todo_backend/internal/app/graphql"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	todohandler "todo_backend/internal/feature/todo/transport/handler"
	"todo_backend/internal/platform/http/middleware"
	jwtmw "todo_backend/internal/platform/jwt"
)

// NewRouter はRESTとGraphQLのエンドポイントを登録したエンジンを返します。
func NewRouter(
	authHandler *authhandler.AuthHandler,
	todos *todohandler.TodoHandler,
	gql *gqlapp.Handler,
	health gin.HandlerFunc,
	verifier jwtmw.TokenVerifier,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	// APIドキュメント
	r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		// 新規ユーザー登録
		authGroup.POST("/register", authHandler.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", authHandler.Login)
	}

	// GraphQLはトークンを任意で受け取り、認可はリゾルバー側で行う
	r.POST("/graphql", gql.Serve)
	r.GET("/graphql", gql.Serve)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	todoGroup := r.Group("/todos")
	todoGroup.Use(jwtmw.AuthRequired(verifier))
	{
		todoGroup.GET("", todos.List)
		todoGroup.POST("", todos.Create)
		todoGroup.GET("/:id", todos.Get)
		todoGroup.PUT("/:id", todos.Update)
		todoGroup.DELETE("/:id", todos.Delete)
	}

	return r
}
