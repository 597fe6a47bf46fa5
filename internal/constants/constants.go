package constants

// 订单状态常量
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// 支付方式常量
const (
	PaymentMethodCashOnDelivery = "Cash on Delivery"
	PaymentMethodMobileMoney    = "Mobile Money"
	PaymentMethodCreditCard     = "Credit Card"
)

// 订单项类型
const (
	ItemTypeProduct = "Product"
	ItemTypeService = "Service"
	ItemTypePuppy   = "Puppy"
)

// 交付方式
const (
	DeliveryTypePickup = "Pickup"
	DeliveryTypeHome   = "Home Delivery"

	DeliveryOptionPickup = "1"
	DeliveryOptionHome   = "2"
)

// 商品分类
const (
	ProductCategoryShampoo     = "Shampoo"
	ProductCategoryAccessories = "Accessories"
	ProductCategoryFood        = "Food"
	ProductCategoryOther       = "Other"
)

// 服务分类
const (
	ServiceCategoryGrooming = "Grooming"
	ServiceCategoryTraining = "Training"
	ServiceCategoryOther    = "Other"
)

// 幼犬性别
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// 预约状态
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 认证审计
const (
	AuthActorUser  = "user"
	AuthActorAdmin = "admin"

	AuthEventLogin          = "login"
	AuthEventRegister       = "register"
	AuthEventPasswordChange = "password_change"

	AuthResultSuccess = "success"
	AuthResultFailed  = "failed"
)
