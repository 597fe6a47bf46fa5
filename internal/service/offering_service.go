package service

import (
	"strings"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// OfferingService 到店服务（美容、训练）目录
type OfferingService struct {
	repo repository.ServiceRepository
}

// NewOfferingService 创建服务目录
func NewOfferingService(repo repository.ServiceRepository) *OfferingService {
	return &OfferingService{repo: repo}
}

// OfferingInput 服务创建/更新参数
type OfferingInput struct {
	Name            string
	Description     string
	Category        string
	Price           models.Money
	DurationMinutes int
	Images          []string
	IsActive        *bool
}

// List 服务列表
func (s *OfferingService) List(filter repository.ServiceListFilter) ([]models.Service, int64, error) {
	if filter.Category != "" {
		category, ok := matchEnum(filter.Category, serviceCategories()...)
		if !ok {
			return []models.Service{}, 0, nil
		}
		filter.Category = category
	}
	return s.repo.List(filter)
}

// Get 服务详情
func (s *OfferingService) Get(id uint, onlyActive bool) (*models.Service, error) {
	svc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil || (onlyActive && !svc.IsActive) {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// Create 新建服务
func (s *OfferingService) Create(input OfferingInput) (*models.Service, error) {
	svc := &models.Service{IsActive: true, DurationMinutes: 60}
	if err := applyOfferingInput(svc, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Update 更新服务
func (s *OfferingService) Update(id uint, input OfferingInput) (*models.Service, error) {
	svc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if err := applyOfferingInput(svc, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete 删除服务
func (s *OfferingService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}
	return nil
}

func applyOfferingInput(svc *models.Service, input OfferingInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return newValidationError(ErrInvalidInput, "name")
	}
	category, ok := matchEnum(input.Category, serviceCategories()...)
	if !ok {
		return newValidationError(ErrInvalidInput, "category")
	}
	if err := validatePrice(input.Price, "price"); err != nil {
		return err
	}
	if input.DurationMinutes < 0 {
		return newValidationError(ErrInvalidInput, "durationMinutes")
	}
	svc.Name = name
	svc.Description = strings.TrimSpace(input.Description)
	svc.Category = category
	svc.Price = input.Price
	if input.DurationMinutes > 0 {
		svc.DurationMinutes = input.DurationMinutes
	}
	svc.Images = normalizeImages(input.Images)
	svc.IsActive = boolOr(input.IsActive, svc.IsActive)
	return nil
}

func serviceCategories() []string {
	return []string{
		constants.ServiceCategoryGrooming,
		constants.ServiceCategoryTraining,
		constants.ServiceCategoryOther,
	}
}
