package service

import (
	"strings"

	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// CollectionService 专题服务
type CollectionService struct {
	repo        repository.CollectionRepository
	productRepo repository.ProductRepository
	puppyRepo   repository.PuppyRepository
	serviceRepo repository.ServiceRepository
}

// NewCollectionService 创建专题服务
func NewCollectionService(repo repository.CollectionRepository, productRepo repository.ProductRepository, puppyRepo repository.PuppyRepository, serviceRepo repository.ServiceRepository) *CollectionService {
	return &CollectionService{
		repo:        repo,
		productRepo: productRepo,
		puppyRepo:   puppyRepo,
		serviceRepo: serviceRepo,
	}
}

// CollectionInput 专题参数，成员 ID 为 nil 时更新保留原成员
type CollectionInput struct {
	Name            string
	Description     string
	BackgroundImage string
	ProductIDs      []uint
	PuppyIDs        []uint
	ServiceIDs      []uint
}

// List 全部专题（含成员）
func (s *CollectionService) List() ([]models.Collection, error) {
	return s.repo.List()
}

// GetByKey 根据 slug 获取专题
func (s *CollectionService) GetByKey(key string) (*models.Collection, error) {
	collection, err := s.repo.GetByKey(strings.ToLower(strings.TrimSpace(key)))
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	return collection, nil
}

// Create 新建专题，名称生成的 key 已存在时报错
func (s *CollectionService) Create(input CollectionInput) (*models.Collection, error) {
	name := strings.TrimSpace(input.Name)
	key := slugify(name)
	if key == "" {
		return nil, newValidationError(ErrInvalidInput, "name")
	}
	existing, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCollectionExists
	}
	collection := &models.Collection{
		Key:             key,
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		BackgroundImage: strings.TrimSpace(input.BackgroundImage),
	}
	if err := s.resolveMembers(collection, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(collection); err != nil {
		return nil, err
	}
	return s.repo.GetByID(collection.ID)
}

// Update 更新专题，改名时重新生成 key
func (s *CollectionService) Update(id uint, input CollectionInput) (*models.Collection, error) {
	collection, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" && name != collection.Name {
		key := slugify(name)
		if key == "" {
			return nil, newValidationError(ErrInvalidInput, "name")
		}
		other, err := s.repo.GetByKey(key)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != collection.ID {
			return nil, ErrCollectionExists
		}
		collection.Name = name
		collection.Key = key
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		collection.Description = desc
	}
	if img := strings.TrimSpace(input.BackgroundImage); img != "" {
		collection.BackgroundImage = img
	}
	if err := s.resolveMembers(collection, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(collection); err != nil {
		return nil, err
	}
	return s.repo.GetByID(collection.ID)
}

// Delete 删除专题
func (s *CollectionService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCollectionNotFound
	}
	return nil
}

// resolveMembers 加载成员，任一 ID 不存在即报错
func (s *CollectionService) resolveMembers(collection *models.Collection, input CollectionInput) error {
	if input.ProductIDs != nil {
		products := make([]models.Product, 0, len(input.ProductIDs))
		for _, id := range uniqueIDs(input.ProductIDs) {
			product, err := s.productRepo.GetByID(id)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			product.Collections = nil
			products = append(products, *product)
		}
		collection.Products = products
	}
	if input.PuppyIDs != nil {
		puppies := make([]models.Puppy, 0, len(input.PuppyIDs))
		for _, id := range uniqueIDs(input.PuppyIDs) {
			puppy, err := s.puppyRepo.GetByID(id)
			if err != nil {
				return err
			}
			if puppy == nil {
				return ErrPuppyNotFound
			}
			puppies = append(puppies, *puppy)
		}
		collection.Puppies = puppies
	}
	if input.ServiceIDs != nil {
		services := make([]models.Service, 0, len(input.ServiceIDs))
		for _, id := range uniqueIDs(input.ServiceIDs) {
			svc, err := s.serviceRepo.GetByID(id)
			if err != nil {
				return err
			}
			if svc == nil {
				return ErrServiceNotFound
			}
			services = append(services, *svc)
		}
		collection.Services = services
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
