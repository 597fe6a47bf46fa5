package service

import (
	"strings"
	"time"

	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
)

// CartLine 购物车行，三种变体之一：ProductLine / ServiceLine / PuppyLine
type CartLine interface {
	Ref() models.ItemRef
	Quantity() int
	fieldUpdates() map[string]interface{}
}

// ProductLine 商品行
type ProductLine struct {
	ProductID        uint
	Qty              int
	DeliveryOptionID string
}

// Ref 返回引用
func (l ProductLine) Ref() models.ItemRef {
	return models.ItemRef{Type: constants.ItemTypeProduct, ID: l.ProductID}
}

// Quantity 返回数量，缺省为 1
func (l ProductLine) Quantity() int {
	return positiveQuantity(l.Qty)
}

func (l ProductLine) fieldUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if l.DeliveryOptionID != "" {
		updates["delivery_option_id"] = l.DeliveryOptionID
	}
	return updates
}

// ServiceLine 服务行
type ServiceLine struct {
	ServiceID       uint
	Qty             int
	ServiceDate     *time.Time
	ServiceOptionID string
}

// Ref 返回引用
func (l ServiceLine) Ref() models.ItemRef {
	return models.ItemRef{Type: constants.ItemTypeService, ID: l.ServiceID}
}

// Quantity 返回数量，缺省为 1
func (l ServiceLine) Quantity() int {
	return positiveQuantity(l.Qty)
}

func (l ServiceLine) fieldUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if l.ServiceDate != nil {
		updates["service_date"] = *l.ServiceDate
	}
	if l.ServiceOptionID != "" {
		updates["service_option_id"] = l.ServiceOptionID
	}
	return updates
}

// PuppyLine 幼犬行，数量固定为 1
type PuppyLine struct {
	PuppyID          uint
	DeliveryOptionID string
}

// Ref 返回引用
func (l PuppyLine) Ref() models.ItemRef {
	return models.ItemRef{Type: constants.ItemTypePuppy, ID: l.PuppyID}
}

// Quantity 幼犬恒为 1
func (l PuppyLine) Quantity() int {
	return 1
}

func (l PuppyLine) fieldUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if l.DeliveryOptionID != "" {
		updates["delivery_option_id"] = l.DeliveryOptionID
	}
	return updates
}

// CartLineInput 原始请求参数，ID 三选一
type CartLineInput struct {
	ProductID        uint
	ServiceID        uint
	PuppyID          uint
	Quantity         int
	ServiceDate      *time.Time
	ServiceOptionID  string
	DeliveryOptionID string
}

// NewCartLine 校验三选一并构造对应变体
func NewCartLine(in CartLineInput) (CartLine, error) {
	ref, err := ResolveItemRef(in.ProductID, in.ServiceID, in.PuppyID)
	if err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, newValidationError(ErrInvalidInput, "quantity")
	}
	delivery, err := normalizeDeliveryOption(in.DeliveryOptionID, true)
	if err != nil {
		return nil, err
	}
	switch ref.Type {
	case constants.ItemTypeProduct:
		return ProductLine{ProductID: ref.ID, Qty: in.Quantity, DeliveryOptionID: delivery}, nil
	case constants.ItemTypeService:
		return ServiceLine{
			ServiceID:       ref.ID,
			Qty:             in.Quantity,
			ServiceDate:     in.ServiceDate,
			ServiceOptionID: strings.TrimSpace(in.ServiceOptionID),
		}, nil
	default:
		return PuppyLine{PuppyID: ref.ID, DeliveryOptionID: delivery}, nil
	}
}

// ResolveItemRef 从三个可选 ID 中解析唯一引用
func ResolveItemRef(productID, serviceID, puppyID uint) (models.ItemRef, error) {
	var refs []models.ItemRef
	if productID != 0 {
		refs = append(refs, models.ItemRef{Type: constants.ItemTypeProduct, ID: productID})
	}
	if serviceID != 0 {
		refs = append(refs, models.ItemRef{Type: constants.ItemTypeService, ID: serviceID})
	}
	if puppyID != 0 {
		refs = append(refs, models.ItemRef{Type: constants.ItemTypePuppy, ID: puppyID})
	}
	if len(refs) != 1 {
		return models.ItemRef{}, newValidationError(ErrCartItemRef, "productId", "serviceId", "puppyId")
	}
	return refs[0], nil
}

func normalizeDeliveryOption(raw string, allowEmpty bool) (string, error) {
	v := strings.TrimSpace(raw)
	switch v {
	case constants.DeliveryOptionPickup, constants.DeliveryOptionHome:
		return v, nil
	case "":
		if allowEmpty {
			return "", nil
		}
	}
	return "", newValidationError(ErrInvalidInput, "deliveryOptionId")
}

func positiveQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func deliveryTypeFor(itemType, deliveryOptionID string) string {
	if itemType == constants.ItemTypeService {
		return constants.DeliveryTypePickup
	}
	if deliveryOptionID == constants.DeliveryOptionHome {
		return constants.DeliveryTypeHome
	}
	return constants.DeliveryTypePickup
}
