package service

import (
	"strings"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// BookingService 服务预约
type BookingService struct {
	repo        repository.BookingRepository
	serviceRepo repository.ServiceRepository
}

// NewBookingService 创建预约服务
func NewBookingService(repo repository.BookingRepository, serviceRepo repository.ServiceRepository) *BookingService {
	return &BookingService{repo: repo, serviceRepo: serviceRepo}
}

// CreateBookingInput 预约参数
type CreateBookingInput struct {
	UserID          uint
	ServiceID       uint
	AppointmentDate *time.Time
	Notes           string
}

// Create 创建预约，服务必须存在且上架
func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	var fields []string
	if input.ServiceID == 0 {
		fields = append(fields, "serviceId")
	}
	if input.AppointmentDate == nil || input.AppointmentDate.IsZero() {
		fields = append(fields, "appointmentDate")
	}
	if len(fields) > 0 {
		return nil, newValidationError(ErrInvalidInput, fields...)
	}
	svc, err := s.serviceRepo.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if !svc.IsActive {
		return nil, &ItemUnavailableError{ItemType: constants.ItemTypeService, ItemID: svc.ID, Name: svc.Name}
	}
	booking := &models.Booking{
		UserID:          input.UserID,
		ServiceID:       svc.ID,
		AppointmentDate: input.AppointmentDate.UTC(),
		Status:          constants.BookingStatusPending,
		Notes:           strings.TrimSpace(input.Notes),
	}
	if err := s.repo.Create(booking); err != nil {
		return nil, err
	}
	logger.Infow("booking_created", "booking_id", booking.ID, "user_id", booking.UserID, "service_id", booking.ServiceID)
	return s.repo.GetByID(booking.ID)
}

// ListMine 当前用户预约，按预约时间升序
func (s *BookingService) ListMine(userID uint, page, pageSize int) ([]models.Booking, int64, error) {
	return s.repo.List(repository.BookingListFilter{Page: page, PageSize: pageSize, UserID: userID})
}

// ListAdmin 后台预约列表
func (s *BookingService) ListAdmin(filter repository.BookingListFilter) ([]models.Booking, int64, error) {
	if filter.Status != "" {
		status, ok := NormalizeBookingStatus(filter.Status)
		if !ok {
			return nil, 0, ErrBookingStatus
		}
		filter.Status = status
	}
	return s.repo.List(filter)
}

// UpdateStatus 更新预约状态
func (s *BookingService) UpdateStatus(id uint, raw string) (*models.Booking, error) {
	status, ok := NormalizeBookingStatus(raw)
	if !ok {
		return nil, newValidationError(ErrBookingStatus, "status")
	}
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status == status {
		return booking, nil
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	logger.Infow("booking_status_updated", "booking_id", id, "from", booking.Status, "to", status)
	return s.repo.GetByID(id)
}

// Delete 删除预约
func (s *BookingService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookingNotFound
	}
	return nil
}

// NormalizeBookingStatus 大小写不敏感地匹配预约状态
func NormalizeBookingStatus(raw string) (string, bool) {
	return matchEnum(raw,
		constants.BookingStatusPending,
		constants.BookingStatusConfirmed,
		constants.BookingStatusCompleted,
		constants.BookingStatusCancelled,
	)
}
