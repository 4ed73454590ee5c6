// Package respond はユースケースのエラーをRESTレスポンスへ変換します。
package respond

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/shared/apperr"
)

// MsgInvalidBody はJSONとして解釈できないリクエストボディへの応答メッセージです。
const MsgInvalidBody = "invalid request body"

// MessageResponse はメッセージのみを返すレスポンスボディです。
// エラー応答と成功メッセージの両方で使われます。
type MessageResponse struct {
	Message string `json:"message" example:"todo not found"`
}

// StatusOf はエラー種別に対応するHTTPステータスを返します。
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error はerrの種別に応じたステータスと{message}ボディを書き込みます。
// 内部エラーは詳細をログに出し、クライアントには汎用メッセージのみ返します。
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
	}
	c.JSON(StatusOf(kind), MessageResponse{Message: apperr.PublicMessage(err)})
}

// InvalidBody は400 {"message":"invalid request body"} を返します。
func InvalidBody(c *gin.Context, err error) {
	slog.Warn("request body rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, MessageResponse{Message: MsgInvalidBody})
}

// BindJSON はボディをdstへデコードします。空のボディは{}として扱います。
// デコードに失敗した場合は400を書き込みfalseを返します。
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		InvalidBody(c, err)
		return false
	}
	return true
}
