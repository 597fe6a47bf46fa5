package public

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/i18n"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// ShippingAddressRequest 收货地址
type ShippingAddressRequest struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

func (r ShippingAddressRequest) toModel() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:    r.FullName,
		Phone:       r.Phone,
		AddressLine: r.AddressLine,
		City:        r.City,
		Region:      r.Region,
	}
}

// PlaceOrderRequest 购物车结算
type PlaceOrderRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// PlacePuppyOrderRequest 幼犬直购
type PlacePuppyOrderRequest struct {
	PuppyID         uint                   `json:"puppyId"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// PlaceOrder 购物车下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID:          uid,
		ShippingAddress: req.ShippingAddress.toModel(),
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "success.order_placed")
	response.Created(c, msg, gin.H{"message": msg, "order": order})
}

// PlacePuppyOrder 单只幼犬下单，不经过购物车
func (h *Handler) PlacePuppyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlacePuppyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.PlacePuppyOrder(service.PlacePuppyOrderInput{
		UserID:          uid,
		PuppyID:         req.PuppyID,
		ShippingAddress: req.ShippingAddress.toModel(),
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "success.order_placed"), gin.H{"order": order})
}

// GetMyOrders 我的订单
func (h *Handler) GetMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.PageQuery(c)
	orders, total, err := h.OrderService.ListMyOrders(uid, strings.TrimSpace(c.Query("status")), page, pageSize)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetMyOrder 订单详情，只能查看自己的订单
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetMyOrder(uid, id)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	response.Success(c, order)
}
