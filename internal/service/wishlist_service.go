package service

import (
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
	puppyRepo   repository.PuppyRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductRepository, puppyRepo repository.PuppyRepository) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo, puppyRepo: puppyRepo}
}

// WishlistView 心愿单响应，按类型分组
type WishlistView struct {
	Products []models.Product `json:"products"`
	Puppies  []models.Puppy   `json:"puppies"`
}

// Get 获取心愿单，已删除的目录对象被跳过
func (s *WishlistService) Get(userID uint) (*WishlistView, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	view := &WishlistView{Products: []models.Product{}, Puppies: []models.Puppy{}}
	for _, item := range items {
		switch item.ItemType {
		case constants.ItemTypeProduct:
			product, err := s.productRepo.GetByID(item.ItemID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				view.Products = append(view.Products, *product)
			}
		case constants.ItemTypePuppy:
			puppy, err := s.puppyRepo.GetByID(item.ItemID)
			if err != nil {
				return nil, err
			}
			if puppy != nil {
				view.Puppies = append(view.Puppies, *puppy)
			}
		}
	}
	return view, nil
}

// Add 加入心愿单，重复加入报错
func (s *WishlistService) Add(userID uint, itemType string, itemID uint) (*WishlistView, error) {
	ref, err := wishlistRef(itemType, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.checkExists(ref); err != nil {
		return nil, err
	}
	exists, err := s.repo.Exists(userID, ref.Type, ref.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWishlistDuplicate
	}
	if err := s.repo.Create(&models.WishlistItem{UserID: userID, ItemType: ref.Type, ItemID: ref.ID}); err != nil {
		// 唯一索引冲突
		if exists, checkErr := s.repo.Exists(userID, ref.Type, ref.ID); checkErr == nil && exists {
			return nil, ErrWishlistDuplicate
		}
		return nil, err
	}
	return s.Get(userID)
}

// Remove 移出心愿单，不在心愿单中报错
func (s *WishlistService) Remove(userID uint, itemType string, itemID uint) (*WishlistView, error) {
	ref, err := wishlistRef(itemType, itemID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.repo.Delete(userID, ref.Type, ref.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrWishlistMissing
	}
	return s.Get(userID)
}

func (s *WishlistService) checkExists(ref models.ItemRef) error {
	if ref.Type == constants.ItemTypeProduct {
		product, err := s.productRepo.GetByID(ref.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		return nil
	}
	puppy, err := s.puppyRepo.GetByID(ref.ID)
	if err != nil {
		return err
	}
	if puppy == nil {
		return ErrPuppyNotFound
	}
	return nil
}

func wishlistRef(itemType string, itemID uint) (models.ItemRef, error) {
	var fields []string
	normalized, ok := matchEnum(itemType, constants.ItemTypeProduct, constants.ItemTypePuppy)
	if !ok {
		fields = append(fields, "itemType")
	}
	if itemID == 0 {
		fields = append(fields, "itemId")
	}
	if len(fields) > 0 {
		return models.ItemRef{}, newValidationError(ErrInvalidInput, fields...)
	}
	return models.ItemRef{Type: normalized, ID: itemID}, nil
}
