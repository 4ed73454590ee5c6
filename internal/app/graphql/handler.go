package graphql

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"todo_backend/internal/platform/http/respond"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/shared/principal"
)

// MsgMutationOverGET is returned when a mutation is sent with GET.
const MsgMutationOverGET = "mutations are only allowed over POST"

// request はGraphQL over HTTPのリクエストボディです。
type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler はGraphQLエンドポイントを提供します。
type Handler struct {
	schema   graphql.Schema
	verifier jwtmw.TokenVerifier
}

// NewHandler は指定されたスキーマとトークン検証器でHandlerを生成します。
func NewHandler(schema graphql.Schema, verifier jwtmw.TokenVerifier) *Handler {
	return &Handler{schema: schema, verifier: verifier}
}

func errorBody(msg string) gin.H {
	return gin.H{"errors": []gin.H{{"message": msg}}}
}

// Serve はGETのクエリパラメータまたはPOSTのJSONボディを実行します。
// 実行時のエラーはHTTP 200の`errors`として返します。
//
//	@Summary		Execute a GraphQL operation
//	@Tags			graphql
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]interface{}
//	@Router			/graphql [post]
func (h *Handler) Serve(c *gin.Context) {
	var req request
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if v := c.Query("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, errorBody(respond.MsgInvalidBody))
				return
			}
		}
		if isMutation(req.Query, req.OperationName) {
			c.Header("Allow", http.MethodPost)
			c.JSON(http.StatusMethodNotAllowed, errorBody(MsgMutationOverGET))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("graphql request body rejected", "error", err)
		c.JSON(http.StatusBadRequest, errorBody(respond.MsgInvalidBody))
		return
	}

	ctx := c.Request.Context()
	// トークンが無効でも拒否せず、プリンシパルなしで実行する
	if token, ok := jwtmw.BearerToken(c.GetHeader("Authorization")); ok {
		if p, err := h.verifier.VerifyToken(token); err == nil {
			ctx = principal.WithContext(ctx, p)
		} else {
			slog.Debug("graphql token ignored", "error", err)
		}
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	c.JSON(http.StatusOK, responseBody(result))
}

// responseBody はエラーを message のみに絞った応答を返します。
// locations や path はクライアントに返さない。
func responseBody(result *graphql.Result) gin.H {
	body := gin.H{"data": result.Data}
	if len(result.Errors) > 0 {
		errs := make([]gin.H, 0, len(result.Errors))
		for _, e := range result.Errors {
			errs = append(errs, gin.H{"message": e.Message})
		}
		body["errors"] = errs
	}
	return body
}

// isMutation reports whether the selected operation of query is a mutation.
// Unparsable documents return false and are reported by graphql.Do.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" || (op.Name != nil && op.Name.Value == operationName) {
			return op.Operation == ast.OperationTypeMutation
		}
	}
	return false
}
