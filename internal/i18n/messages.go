package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":             "Invalid request parameters",
		"error.unauthorized":            "Unauthorized",
		"error.forbidden":               "Forbidden",
		"error.not_found":               "Resource not found",
		"error.internal":                "Internal server error",
		"error.too_many_requests":       "Too many requests, please try again later",
		"error.invalid_id":              "Invalid id",
		"error.captcha_invalid":         "Captcha is invalid or expired",
		"error.shipping_incomplete":     "Please provide complete shipping address.",
		"error.payment_method_invalid":  "Invalid payment method",
		"error.cart_empty":              "Cart is empty",
		"error.cart_not_found":          "Cart not found",
		"error.cart_item_not_found":     "Item not in cart",
		"error.cart_item_ref_required":  "Exactly one of productId, serviceId or puppyId is required",
		"error.cart_puppy_duplicate":    "This puppy is already in your cart.",
		"error.item_unavailable":        "Item is no longer available",
		"error.puppy_sold":              "Puppy %s is already sold",
		"error.product_not_found":       "Product not found",
		"error.service_not_found":       "Service not found",
		"error.puppy_not_found":         "Puppy not found",
		"error.order_not_found":         "Order not found",
		"error.order_status_invalid":    "Invalid status",
		"error.order_status_transition": "Order status cannot change from %s to %s",
		"error.payment_status_invalid":  "Invalid payment status",
		"error.collection_not_found":    "Collection not found",
		"error.collection_exists":       "Collection with this name already exists",
		"error.wishlist_duplicate":      "Item already in wishlist",
		"error.wishlist_missing":        "Item not in wishlist",
		"error.booking_not_found":       "Booking not found",
		"error.booking_status_invalid":  "Invalid booking status",
		"error.user_not_found":          "User not found",
		"error.email_exists":            "Email already registered",
		"error.password_weak":           "Password does not meet the policy",
		"error.login_failed":            "Invalid email or password",
		"error.user_disabled":           "Account is disabled",
		"error.admin_login_failed":      "Invalid username or password",
		"error.token_invalid":           "Invalid or expired token",
		"error.jwt_secret_missing":      "Authentication is not configured",
		"error.auth_header_missing":     "Authorization header is required",
		"error.auth_header_invalid":     "Authorization header must be a Bearer token",
		"error.token_revoked":           "Session has been revoked, please sign in again",
		"error.rate_limited":            "Too many attempts, please retry in %d seconds",
		"error.rate_limit_unavailable":  "Rate limiter unavailable",
		"error.captcha_required":        "Captcha is required",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.email_invalid":           "Invalid email address",
		"error.password_min_length":     "Password must be at least %d characters",
		"error.password_require_letter": "Password must contain a letter",
		"error.password_require_number": "Password must contain a number",
		"error.password_old_invalid":    "Current password is incorrect",
		"error.validation_fields":       "Invalid or missing fields: %s",
		"error.context_invalid":         "Invalid request context",
		"error.dashboard_range_invalid": "Invalid dashboard range",
		"error.role_invalid":            "Invalid role or policy",
		"error.authz_failed":            "Failed to update permissions",
		"success.order_placed":          "Order placed successfully",
		"success.cart_created":          "Cart created",
		"success.registered":            "Registered successfully",
		"success.deleted":               "Deleted successfully",
		"success.cart_cleared":          "Cart cleared",
	},
	LocaleZH: {
		"error.bad_request":             "请求参数错误",
		"error.unauthorized":            "未登录或登录已过期",
		"error.forbidden":               "无权限访问",
		"error.not_found":               "资源不存在",
		"error.internal":                "服务器内部错误",
		"error.too_many_requests":       "请求过于频繁，请稍后再试",
		"error.invalid_id":              "无效的 ID",
		"error.captcha_invalid":         "验证码错误或已过期",
		"error.shipping_incomplete":     "请填写完整的收货地址",
		"error.payment_method_invalid":  "支付方式无效",
		"error.cart_empty":              "购物车为空",
		"error.cart_not_found":          "购物车不存在",
		"error.cart_item_not_found":     "购物车中没有该商品",
		"error.cart_item_ref_required":  "productId、serviceId、puppyId 必须且只能填写一个",
		"error.cart_puppy_duplicate":    "该幼犬已在购物车中",
		"error.item_unavailable":        "商品已不可购买",
		"error.puppy_sold":              "幼犬 %s 已售出",
		"error.product_not_found":       "商品不存在",
		"error.service_not_found":       "服务不存在",
		"error.puppy_not_found":         "幼犬不存在",
		"error.order_not_found":         "订单不存在",
		"error.order_status_invalid":    "订单状态无效",
		"error.order_status_transition": "订单状态不能从 %s 变更为 %s",
		"error.payment_status_invalid":  "支付状态无效",
		"error.collection_not_found":    "专题不存在",
		"error.collection_exists":       "同名专题已存在",
		"error.wishlist_duplicate":      "已在心愿单中",
		"error.wishlist_missing":        "心愿单中没有该项",
		"error.booking_not_found":       "预约不存在",
		"error.booking_status_invalid":  "预约状态无效",
		"error.user_not_found":          "用户不存在",
		"error.email_exists":            "邮箱已注册",
		"error.password_weak":           "密码不符合安全策略",
		"error.login_failed":            "邮箱或密码错误",
		"error.user_disabled":           "账号已禁用",
		"error.admin_login_failed":      "用户名或密码错误",
		"error.token_invalid":           "令牌无效或已过期",
		"error.jwt_secret_missing":      "鉴权未配置",
		"error.auth_header_missing":     "缺少 Authorization 头",
		"error.auth_header_invalid":     "Authorization 头格式应为 Bearer 令牌",
		"error.token_revoked":           "登录状态已失效，请重新登录",
		"error.rate_limited":            "尝试过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":  "限流服务不可用",
		"error.captcha_required":        "请输入验证码",
		"error.captcha_generate_failed": "验证码生成失败",
		"error.email_invalid":           "邮箱格式错误",
		"error.password_min_length":     "密码长度至少 %d 位",
		"error.password_require_letter": "密码必须包含字母",
		"error.password_require_number": "密码必须包含数字",
		"error.password_old_invalid":    "原密码错误",
		"error.validation_fields":       "以下字段无效或缺失：%s",
		"error.context_invalid":         "请求上下文无效",
		"error.dashboard_range_invalid": "统计区间无效",
		"error.role_invalid":            "角色或策略无效",
		"error.authz_failed":            "权限更新失败",
		"success.order_placed":          "下单成功",
		"success.cart_created":          "购物车已创建",
		"success.registered":            "注册成功",
		"success.deleted":               "删除成功",
		"success.cart_cleared":          "购物车已清空",
	},
}
