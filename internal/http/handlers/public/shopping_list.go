package public

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

// DownloadShoppingCart 导出当前用户汇总后的购物清单
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	locale := i18n.ResolveLocale(c)
	payload, err := h.ShoppingListService.ExportShoppingList(c.Request.Context(), userID, c.Query("format"), locale)
	if err != nil {
		respondWithMappedError(c, err, shoppingListExportErrorRules, response.CodeInternal, "error.export_failed")
		return
	}
	requestLog(c).Infow("shopping_list_exported",
		"user_id", userID,
		"content_type", payload.ContentType,
		"bytes", len(payload.Body),
	)
	response.Attachment(c, payload.ContentType, payload.Filename, payload.Body)
}
