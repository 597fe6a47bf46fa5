package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
	ErrShippingIncomplete = errors.New("shipping address incomplete")
	ErrPaymentMethod      = errors.New("invalid payment method")

	ErrEmptyCart         = errors.New("cart is empty")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCartItemRef       = errors.New("cart item must reference exactly one catalog item")
	ErrDuplicateCartItem = errors.New("puppy already in cart")
	ErrItemUnavailable   = errors.New("item unavailable")

	ErrProductNotFound = errors.New("product not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrPuppyNotFound   = errors.New("puppy not found")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderFetchFailed      = errors.New("order fetch failed")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
	ErrOrderStatusInvalid    = errors.New("invalid order status")
	ErrOrderStatusTransition = errors.New("order status transition not allowed")
	ErrPaymentStatusInvalid  = errors.New("invalid payment status")

	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionExists   = errors.New("collection already exists")
	ErrWishlistDuplicate  = errors.New("item already in wishlist")
	ErrWishlistMissing    = errors.New("item not in wishlist")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingStatus      = errors.New("invalid booking status")

	ErrDashboardRangeInvalid = errors.New("invalid dashboard range")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserDisabled      = errors.New("user disabled")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrWeakPassword      = errors.New("password does not meet policy")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidToken      = errors.New("invalid token")
	ErrCaptchaInvalid    = errors.New("captcha invalid")
	ErrCaptchaRequired   = errors.New("captcha required")
	ErrInvalidPassword   = errors.New("old password mismatch")
	ErrTokenRevoked      = errors.New("token revoked")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrEmailCircuitOpen          = errors.New("email circuit open")
)

// ValidationError 输入校验失败，携带字段名
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), strings.Join(e.Fields, ", "))
}

// Is 同时匹配 ErrInvalidInput 与具体原因
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, fields ...string) error {
	return &ValidationError{Fields: fields, Err: err}
}

// ItemUnavailableError 商品不可购买（幼犬已售出等），客户端应刷新后重试
type ItemUnavailableError struct {
	ItemType string
	ItemID   uint
	Name     string
}

func (e *ItemUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %d (%s) is unavailable", strings.ToLower(e.ItemType), e.ItemID, e.Name)
	}
	return fmt.Sprintf("%s %d is unavailable", strings.ToLower(e.ItemType), e.ItemID)
}

func (e *ItemUnavailableError) Unwrap() error {
	return ErrItemUnavailable
}
