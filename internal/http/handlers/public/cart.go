package public

import (
	"time"

	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/i18n"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRef 购物车项引用，三个 ID 必须且只能填一个
type CartItemRef struct {
	ProductID uint `json:"productId" form:"productId"`
	ServiceID uint `json:"serviceId" form:"serviceId"`
	PuppyID   uint `json:"puppyId" form:"puppyId"`
}

func (r CartItemRef) resolve() (models.ItemRef, error) {
	return service.ResolveItemRef(r.ProductID, r.ServiceID, r.PuppyID)
}

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	CartItemRef
	Quantity         int        `json:"quantity"`
	ServiceDate      *time.Time `json:"serviceDate"`
	ServiceOptionID  string     `json:"serviceOptionId"`
	DeliveryOptionID string     `json:"deliveryOptionId"`
}

// UpdateCartItemRequest 修改购物车项
type UpdateCartItemRequest struct {
	CartItemRef
	Quantity        int        `json:"quantity"`
	ServiceDate     *time.Time `json:"serviceDate"`
	ServiceOptionID string     `json:"serviceOptionId"`
}

// DeliveryOptionRequest 修改交付方式
type DeliveryOptionRequest struct {
	CartItemRef
	DeliveryOptionID string `json:"deliveryOptionId" binding:"required"`
}

// CreateCart 获取或创建购物车，新建返回 201
func (h *Handler) CreateCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, created, err := h.CartService.CreateCart(uid)
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	if created {
		response.Created(c, "", cart)
		return
	}
	response.Success(c, cart)
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	line, err := service.NewCartLine(service.CartLineInput{
		ProductID:        req.ProductID,
		ServiceID:        req.ServiceID,
		PuppyID:          req.PuppyID,
		Quantity:         req.Quantity,
		ServiceDate:      req.ServiceDate,
		ServiceOptionID:  req.ServiceOptionID,
		DeliveryOptionID: req.DeliveryOptionID,
	})
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	cart, err := h.CartService.AddItem(uid, line)
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 修改数量或服务时间
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	ref, err := req.resolve()
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	cart, err := h.CartService.UpdateItem(uid, service.UpdateCartItemInput{
		Ref:             ref,
		Quantity:        req.Quantity,
		ServiceDate:     req.ServiceDate,
		ServiceOptionID: req.ServiceOptionID,
	})
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 移除一件，幼犬直接删除；引用可放在 body 或 query
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRef
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	ref, err := req.resolve()
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	cart, err := h.CartService.RemoveItem(uid, ref)
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	response.Success(c, cart)
}

// UpdateCartDeliveryOption 修改商品或幼犬的交付方式
func (h *Handler) UpdateCartDeliveryOption(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req DeliveryOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	ref, err := req.resolve()
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	cart, err := h.CartService.UpdateDeliveryOption(uid, ref, req.DeliveryOptionID)
	if err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(uid); err != nil {
		respondMapped(c, err, cartErrorRules, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.cart_cleared"), nil)
}
