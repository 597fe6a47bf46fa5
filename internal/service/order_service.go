package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	puppyRepo repository.PuppyRepository
	notifier  OrderNotifier
	now       func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, puppyRepo repository.PuppyRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		puppyRepo: puppyRepo,
		notifier:  notifier,
		now:       time.Now,
	}
}

// PlaceOrderInput 购物车结算输入
type PlaceOrderInput struct {
	UserID          uint
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
}

// PlacePuppyOrderInput 单只幼犬直购输入
type PlacePuppyOrderInput struct {
	UserID          uint
	PuppyID         uint
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
}

// PlaceOrder 将购物车整体转为订单：校验、快照、占用幼犬、建单、清空购物车在同一事务内完成
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	address, method, err := validateCheckout(input.ShippingAddress, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	submitted, err := s.cartSnapshot(input.UserID)
	if err != nil {
		return nil, err
	}
	return s.placeCartOrder(input.UserID, address, method, submitted)
}

// cartSnapshot 锁外读取提交时的购物车内容，用于并发结算失败时定位已售幼犬
func (s *OrderService) cartSnapshot(userID uint) ([]models.CartItem, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil || cart == nil {
		return nil, err
	}
	return s.cartRepo.ListItems(cart.ID)
}

func (s *OrderService) placeCartOrder(userID uint, address models.ShippingAddress, method string, submitted []models.CartItem) (*models.Order, error) {
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrEmptyCart
		}
		cartItems, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return emptyCartError(s.puppyRepo.WithTx(tx), submitted)
		}

		items, total, err := assembleOrderItems(cartItems)
		if err != nil {
			return err
		}
		if err := reservePuppies(s.puppyRepo.WithTx(tx), items); err != nil {
			return err
		}

		order = s.newOrder(userID, address, method, total)
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		cleared, err := cartRepo.ClearItems(cart.ID)
		if err != nil {
			return err
		}
		// 被并发结算抢先清空时整体回滚
		if cleared != int64(len(cartItems)) {
			return ErrEmptyCart
		}
		return nil
	})
	if err != nil {
		return nil, wrapOrderCreateError(err)
	}

	logger.Infow("order_placed", "order_id", order.ID, "order_no", order.OrderNo, "user_id", userID, "total", order.TotalAmount.String())
	s.afterOrderPlaced(order)
	return order, nil
}

// PlacePuppyOrder 跳过购物车直接购买一只幼犬
func (s *OrderService) PlacePuppyOrder(input PlacePuppyOrderInput) (*models.Order, error) {
	if input.PuppyID == 0 {
		return nil, newValidationError(ErrInvalidInput, "puppyId")
	}
	address, method, err := validateCheckout(input.ShippingAddress, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		puppyRepo := s.puppyRepo.WithTx(tx)
		puppy, err := puppyRepo.GetByID(input.PuppyID)
		if err != nil {
			return err
		}
		if puppy == nil {
			return ErrPuppyNotFound
		}
		item := models.OrderItem{
			ItemType:     constants.ItemTypePuppy,
			ItemID:       puppy.ID,
			ItemName:     puppy.Name,
			UnitPrice:    puppy.Price,
			Quantity:     1,
			TotalPrice:   puppy.Price,
			DeliveryType: constants.DeliveryTypePickup,
		}
		if err := reservePuppies(puppyRepo, []models.OrderItem{item}); err != nil {
			return err
		}
		order = s.newOrder(input.UserID, address, method, puppy.Price)
		return s.orderRepo.WithTx(tx).Create(order, []models.OrderItem{item})
	})
	if err != nil {
		return nil, wrapOrderCreateError(err)
	}

	logger.Infow("puppy_order_placed", "order_id", order.ID, "order_no", order.OrderNo, "puppy_id", input.PuppyID, "user_id", input.UserID)
	s.afterOrderPlaced(order)
	return order, nil
}

func (s *OrderService) newOrder(userID uint, address models.ShippingAddress, method string, total models.Money) *models.Order {
	return &models.Order{
		OrderNo:         generateOrderNo(s.now()),
		UserID:          userID,
		ShippingAddress: address,
		PaymentMethod:   method,
		TotalAmount:     total,
		PaymentStatus:   constants.PaymentStatusPending,
		Status:          constants.OrderStatusPending,
	}
}

func (s *OrderService) afterOrderPlaced(order *models.Order) {
	if s.notifier == nil {
		return
	}
	var hooks postCommitHooks
	orderID := order.ID
	hooks.add("order_confirmation_email", func() error {
		return s.notifier.NotifyOrderPlaced(orderID)
	})
	hooks.run("order_id", orderID)
}

// assembleOrderItems 按当前目录价格快照订单项，目录对象缺失或下架时整单失败
func assembleOrderItems(cartItems []models.CartItem) ([]models.OrderItem, models.Money, error) {
	items := make([]models.OrderItem, 0, len(cartItems))
	total := models.NewMoneyFromCents(0)
	for i := range cartItems {
		ci := &cartItems[i]
		ref, err := ci.Ref()
		if err != nil {
			return nil, total, ErrCartItemRef
		}
		item := models.OrderItem{
			ItemType:     ref.Type,
			ItemID:       ref.ID,
			Quantity:     positiveQuantity(ci.Quantity),
			DeliveryType: deliveryTypeFor(ref.Type, ci.DeliveryOptionID),
		}
		switch ref.Type {
		case constants.ItemTypeProduct:
			if ci.Product == nil || !ci.Product.IsActive {
				return nil, total, unavailableFromCart(ref, ci)
			}
			item.ItemName = ci.Product.Name
			item.UnitPrice = ci.Product.Price
		case constants.ItemTypeService:
			if ci.Service == nil || !ci.Service.IsActive {
				return nil, total, unavailableFromCart(ref, ci)
			}
			item.ItemName = ci.Service.Name
			item.UnitPrice = ci.Service.Price
			item.ServiceDate = ci.ServiceDate
			item.ServiceOptionID = ci.ServiceOptionID
		case constants.ItemTypePuppy:
			if ci.Puppy == nil {
				return nil, total, unavailableFromCart(ref, ci)
			}
			item.ItemName = ci.Puppy.Name
			item.UnitPrice = ci.Puppy.Price
			item.Quantity = 1
		}
		item.TotalPrice = item.UnitPrice.Times(item.Quantity)
		total = total.Plus(item.TotalPrice)
		items = append(items, item)
	}
	return items, total, nil
}

// reservePuppies 按 ID 升序逐只占用，任一失败返回不可售错误由外层回滚
func reservePuppies(puppyRepo repository.PuppyRepository, items []models.OrderItem) error {
	puppies := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.ItemType == constants.ItemTypePuppy {
			puppies = append(puppies, item)
		}
	}
	sort.Slice(puppies, func(i, j int) bool { return puppies[i].ItemID < puppies[j].ItemID })
	for _, item := range puppies {
		ok, err := puppyRepo.Reserve(item.ItemID)
		if err != nil {
			return err
		}
		if !ok {
			return &ItemUnavailableError{ItemType: constants.ItemTypePuppy, ItemID: item.ItemID, Name: item.ItemName}
		}
	}
	return nil
}

// emptyCartError 购物车已被并发结算清空时，提交内容里已售出的幼犬优先报不可售
func emptyCartError(puppyRepo repository.PuppyRepository, submitted []models.CartItem) error {
	for i := range submitted {
		ci := &submitted[i]
		if ci.PuppyID == nil {
			continue
		}
		puppy, err := puppyRepo.GetByID(*ci.PuppyID)
		if err != nil {
			return err
		}
		if puppy == nil || !puppy.IsAvailable {
			ref := models.ItemRef{Type: constants.ItemTypePuppy, ID: *ci.PuppyID}
			return unavailableFromCart(ref, ci)
		}
	}
	return ErrEmptyCart
}

func unavailableFromCart(ref models.ItemRef, ci *models.CartItem) error {
	name := ""
	switch {
	case ci.Product != nil:
		name = ci.Product.Name
	case ci.Service != nil:
		name = ci.Service.Name
	case ci.Puppy != nil:
		name = ci.Puppy.Name
	}
	return &ItemUnavailableError{ItemType: ref.Type, ItemID: ref.ID, Name: name}
}

func validateCheckout(address models.ShippingAddress, paymentMethod string) (models.ShippingAddress, string, error) {
	address = models.ShippingAddress{
		FullName:    strings.TrimSpace(address.FullName),
		Phone:       strings.TrimSpace(address.Phone),
		AddressLine: strings.TrimSpace(address.AddressLine),
		City:        strings.TrimSpace(address.City),
		Region:      strings.TrimSpace(address.Region),
	}
	if missing := address.MissingFields(); len(missing) > 0 {
		return address, "", newValidationError(ErrShippingIncomplete, missing...)
	}
	method, ok := normalizePaymentMethod(paymentMethod)
	if !ok {
		return address, "", newValidationError(ErrPaymentMethod, "paymentMethod")
	}
	return address, method, nil
}

func normalizePaymentMethod(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	for _, method := range []string{
		constants.PaymentMethodCashOnDelivery,
		constants.PaymentMethodMobileMoney,
		constants.PaymentMethodCreditCard,
	} {
		if strings.EqualFold(v, method) {
			return method, true
		}
	}
	return "", false
}

// wrapOrderCreateError 业务错误原样返回，其余归为建单失败
func wrapOrderCreateError(err error) error {
	var unavailable *ItemUnavailableError
	switch {
	case errors.As(err, &unavailable),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrPuppyNotFound),
		errors.Is(err, ErrCartItemRef),
		errors.Is(err, ErrInvalidInput):
		return err
	}
	logger.Errorw("order_create_failed", "error", err)
	return fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
}

func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("PH%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String()
}
