package admin

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/repository"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态变更
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderTrackingRequest 物流与支付信息变更
type UpdateOrderTrackingRequest struct {
	TrackingNumber *string `json:"trackingNumber"`
	PaymentStatus  *string `json:"paymentStatus"`
	DeliveryDate   *string `json:"deliveryDate"`
}

// ListOrders 全部订单
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	createdFrom, err := parseTimeValue(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeValue(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      uint(shared.QueryInt(c, "user_id", 0)),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := service.NormalizeOrderStatus(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
			return
		}
		filter.Status = status
	}
	orders, total, err := h.OrderService.ListAdminOrders(filter)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetAdminOrder(id)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}
	order, err := h.OrderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	adminID, _ := c.Get("admin_id")
	requestLog(c).Infow("admin_order_status_changed", "order_id", id, "status", order.Status, "admin_id", adminID)
	response.Success(c, order)
}

// UpdateOrderTracking 修改物流单号、支付状态与预计送达
func (h *Handler) UpdateOrderTracking(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	input := service.UpdateOrderTrackingInput{
		TrackingNumber: req.TrackingNumber,
		PaymentStatus:  req.PaymentStatus,
	}
	if req.DeliveryDate != nil {
		deliveryDate, err := parseTimeValue(*req.DeliveryDate)
		if err != nil || deliveryDate == nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		input.DeliveryDate = deliveryDate
	}
	order, err := h.OrderService.UpdateOrderTracking(id, input)
	if err != nil {
		respondMapped(c, err, orderErrorRules, "error.internal")
		return
	}
	response.Success(c, order)
}
