package public

import (
	"github.com/pawhaven/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistRequest 心愿单项
type WishlistRequest struct {
	ItemType string `json:"itemType" form:"itemType"`
	ItemID   uint   `json:"itemId" form:"itemId"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.WishlistService.Get(uid)
	if err != nil {
		respondMapped(c, err, wishlistErrorRules, "error.internal")
		return
	}
	response.Success(c, view)
}

// AddWishlist 加入心愿单，重复加入返回 400
func (h *Handler) AddWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.WishlistService.Add(uid, req.ItemType, req.ItemID)
	if err != nil {
		respondMapped(c, err, wishlistErrorRules, "error.internal")
		return
	}
	response.Success(c, view)
}

// RemoveWishlist 移出心愿单，参数可放在 body 或 query
func (h *Handler) RemoveWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.WishlistService.Remove(uid, req.ItemType, req.ItemID)
	if err != nil {
		respondMapped(c, err, wishlistErrorRules, "error.internal")
		return
	}
	response.Success(c, view)
}
