package public

import (
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"
)

var authErrorRules = []shared.MappedError{
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrInvalidCredential, Code: response.CodeUnauthorized, Key: "error.login_failed"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var cartErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrCartNotFound, Code: response.CodeNotFound, Key: "error.cart_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrCartItemRef, Code: response.CodeBadRequest, Key: "error.cart_item_ref_required"},
	{Target: service.ErrDuplicateCartItem, Code: response.CodeBadRequest, Key: "error.cart_puppy_duplicate"},
	{Target: service.ErrItemUnavailable, Code: response.CodeBadRequest, Key: "error.item_unavailable"},
}, shared.CommonErrorRules)

var orderErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrShippingIncomplete, Code: response.CodeBadRequest, Key: "error.shipping_incomplete"},
	{Target: service.ErrPaymentMethod, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrItemUnavailable, Code: response.CodeBadRequest, Key: "error.item_unavailable"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
}, shared.CommonErrorRules)

var wishlistErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrWishlistDuplicate, Code: response.CodeBadRequest, Key: "error.wishlist_duplicate"},
	{Target: service.ErrWishlistMissing, Code: response.CodeBadRequest, Key: "error.wishlist_missing"},
}, shared.CommonErrorRules)

var bookingErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrItemUnavailable, Code: response.CodeBadRequest, Key: "error.item_unavailable"},
	{Target: service.ErrBookingNotFound, Code: response.CodeNotFound, Key: "error.booking_not_found"},
}, shared.CommonErrorRules)

var catalogErrorRules = shared.ConcatMappedErrors([]shared.MappedError{
	{Target: service.ErrCollectionNotFound, Code: response.CodeNotFound, Key: "error.collection_not_found"},
}, shared.CommonErrorRules)
