package admin

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateBookingStatusRequest 预约状态变更
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListBookings 全部预约
func (h *Handler) ListBookings(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	bookings, total, err := h.BookingService.ListAdmin(repository.BookingListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(shared.QueryInt(c, "user_id", 0)),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondMapped(c, err, bookingErrorRules, "error.internal")
		return
	}
	response.SuccessWithPage(c, bookings, response.BuildPagination(page, pageSize, total))
}

// UpdateBookingStatus 确认/完成/取消预约
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.booking_status_invalid", nil)
		return
	}
	booking, err := h.BookingService.UpdateStatus(id, req.Status)
	if err != nil {
		respondMapped(c, err, bookingErrorRules, "error.internal")
		return
	}
	response.Success(c, booking)
}

// DeleteBooking 删除预约
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.BookingService.Delete(id); err != nil {
		respondMapped(c, err, bookingErrorRules, "error.internal")
		return
	}
	respondDeleted(c)
}
