package service

import (
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
)

// CartView 购物车响应
type CartView struct {
	models.Cart
	TotalQuantity int          `json:"total_quantity"`
	Subtotal      models.Money `json:"subtotal"`
}

// UpdateCartItemInput 修改购物车项
type UpdateCartItemInput struct {
	Ref             models.ItemRef
	Quantity        int
	ServiceDate     *time.Time
	ServiceOptionID string
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	puppyRepo   repository.PuppyRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, serviceRepo repository.ServiceRepository, puppyRepo repository.PuppyRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		puppyRepo:   puppyRepo,
	}
}

// CreateCart 获取或创建购物车，created 表示本次新建
func (s *CartService) CreateCart(userID uint) (*CartView, bool, error) {
	cart, created, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, false, err
	}
	view, err := s.buildView(cart)
	return view, created, err
}

// GetCart 获取购物车，不存在时返回空购物车
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartView{Cart: models.Cart{UserID: userID, Items: []models.CartItem{}}}, nil
	}
	return s.buildView(cart)
}

// AddItem 加入购物车：商品/服务累加数量，幼犬不可重复
func (s *CartService) AddItem(userID uint, line CartLine) (*CartView, error) {
	ref := line.Ref()
	if err := s.checkCatalog(ref); err != nil {
		return nil, err
	}
	cart, _, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItem(cart.ID, ref.Key())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		item, err := models.NewCartItem(cart.ID, ref, line.Quantity())
		if err != nil {
			return nil, ErrCartItemRef
		}
		applyLineFields(item, line)
		createErr := s.cartRepo.CreateItem(item)
		if createErr == nil {
			logger.Infow("cart_item_added", "user_id", userID, "ref", ref.Key())
			return s.buildView(cart)
		}
		// 并发插入同一引用时唯一索引冲突，回读后按已存在处理
		existing, err = s.cartRepo.GetItem(cart.ID, ref.Key())
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, createErr
		}
	}

	if ref.Type == constants.ItemTypePuppy {
		return nil, ErrDuplicateCartItem
	}
	if err := s.cartRepo.IncrementItem(existing.ID, line.Quantity(), line.fieldUpdates()); err != nil {
		return nil, err
	}
	logger.Infow("cart_item_incremented", "user_id", userID, "ref", ref.Key(), "delta", line.Quantity())
	return s.buildView(cart)
}

// UpdateItem 修改数量或服务信息，幼犬数量固定为 1，数量为 0 表示不修改
func (s *CartService) UpdateItem(userID uint, input UpdateCartItemInput) (*CartView, error) {
	if input.Quantity < 0 {
		return nil, newValidationError(ErrInvalidInput, "quantity")
	}
	cart, item, err := s.loadItem(userID, input.Ref)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	switch input.Ref.Type {
	case constants.ItemTypePuppy:
		updates["quantity"] = 1
	case constants.ItemTypeService:
		if input.Quantity > 0 {
			updates["quantity"] = input.Quantity
		}
		if input.ServiceDate != nil {
			updates["service_date"] = *input.ServiceDate
		}
		if input.ServiceOptionID != "" {
			updates["service_option_id"] = input.ServiceOptionID
		}
	default:
		if input.Quantity > 0 {
			updates["quantity"] = input.Quantity
		}
	}
	if len(updates) > 0 {
		if err := s.cartRepo.UpdateItem(item.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.buildView(cart)
}

// RemoveItem 商品/服务数量减一，降到 0 删除；幼犬直接删除
func (s *CartService) RemoveItem(userID uint, ref models.ItemRef) (*CartView, error) {
	cart, item, err := s.loadItem(userID, ref)
	if err != nil {
		return nil, err
	}
	if ref.Type != constants.ItemTypePuppy {
		decremented, err := s.cartRepo.DecrementItem(item.ID)
		if err != nil {
			return nil, err
		}
		if decremented {
			return s.buildView(cart)
		}
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.buildView(cart)
}

// UpdateDeliveryOption 修改配送方式，仅商品与幼犬
func (s *CartService) UpdateDeliveryOption(userID uint, ref models.ItemRef, optionID string) (*CartView, error) {
	if ref.Type == constants.ItemTypeService {
		return nil, newValidationError(ErrInvalidInput, "serviceId")
	}
	option, err := normalizeDeliveryOption(optionID, false)
	if err != nil {
		return nil, err
	}
	cart, item, err := s.loadItem(userID, ref)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.UpdateItem(item.ID, map[string]interface{}{"delivery_option_id": option}); err != nil {
		return nil, err
	}
	return s.buildView(cart)
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(userID uint) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotFound
	}
	_, err = s.cartRepo.ClearItems(cart.ID)
	return err
}

func (s *CartService) loadItem(userID uint, ref models.ItemRef) (*models.Cart, *models.CartItem, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil {
		return nil, nil, ErrCartNotFound
	}
	item, err := s.cartRepo.GetItem(cart.ID, ref.Key())
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}

func (s *CartService) checkCatalog(ref models.ItemRef) error {
	switch ref.Type {
	case constants.ItemTypeProduct:
		product, err := s.productRepo.GetByID(ref.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		if !product.IsActive {
			return &ItemUnavailableError{ItemType: ref.Type, ItemID: ref.ID, Name: product.Name}
		}
	case constants.ItemTypeService:
		svc, err := s.serviceRepo.GetByID(ref.ID)
		if err != nil {
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}
		if !svc.IsActive {
			return &ItemUnavailableError{ItemType: ref.Type, ItemID: ref.ID, Name: svc.Name}
		}
	case constants.ItemTypePuppy:
		puppy, err := s.puppyRepo.GetByID(ref.ID)
		if err != nil {
			return err
		}
		if puppy == nil {
			return ErrPuppyNotFound
		}
		if !puppy.IsAvailable {
			return &ItemUnavailableError{ItemType: ref.Type, ItemID: ref.ID, Name: puppy.Name}
		}
	default:
		return ErrCartItemRef
	}
	return nil
}

func (s *CartService) buildView(cart *models.Cart) (*CartView, error) {
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Cart: *cart}
	view.Items = items
	if view.Items == nil {
		view.Items = []models.CartItem{}
	}
	subtotal := models.NewMoneyFromCents(0)
	for _, item := range items {
		view.TotalQuantity += item.Quantity
		if price, ok := catalogPrice(&item); ok {
			subtotal = subtotal.Plus(price.Times(item.Quantity))
		}
	}
	view.Subtotal = subtotal
	return view, nil
}

func applyLineFields(item *models.CartItem, line CartLine) {
	switch l := line.(type) {
	case ProductLine:
		if l.DeliveryOptionID != "" {
			item.DeliveryOptionID = l.DeliveryOptionID
		}
	case PuppyLine:
		if l.DeliveryOptionID != "" {
			item.DeliveryOptionID = l.DeliveryOptionID
		}
	case ServiceLine:
		item.ServiceDate = l.ServiceDate
		item.ServiceOptionID = l.ServiceOptionID
	}
}

// catalogPrice 取预加载目录对象的当前价格
func catalogPrice(item *models.CartItem) (models.Money, bool) {
	switch item.ItemType {
	case constants.ItemTypeProduct:
		if item.Product != nil {
			return item.Product.Price, true
		}
	case constants.ItemTypeService:
		if item.Service != nil {
			return item.Service.Price, true
		}
	case constants.ItemTypePuppy:
		if item.Puppy != nil {
			return item.Puppy.Price, true
		}
	}
	return models.Money{}, false
}
