package public

import (
	"time"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBookingRequest 预约请求
type CreateBookingRequest struct {
	ServiceID       uint       `json:"serviceId"`
	AppointmentDate *time.Time `json:"appointmentDate"`
	Notes           string     `json:"notes"`
}

// CreateBooking 预约服务
func (h *Handler) CreateBooking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	booking, err := h.BookingService.Create(service.CreateBookingInput{
		UserID:          uid,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	})
	if err != nil {
		respondMapped(c, err, bookingErrorRules, "error.internal")
		return
	}
	response.Created(c, "", booking)
}

// GetMyBookings 我的预约，按预约时间升序
func (h *Handler) GetMyBookings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.PageQuery(c)
	bookings, total, err := h.BookingService.ListMine(uid, page, pageSize)
	if err != nil {
		respondMapped(c, err, bookingErrorRules, "error.internal")
		return
	}
	response.SuccessWithPage(c, bookings, response.BuildPagination(page, pageSize, total))
}
