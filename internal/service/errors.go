package service

import "errors"

// 业务错误定义，经 handler 层映射为响应码与 i18n 文案。
var (
	ErrEmailExists          = errors.New("邮箱已注册")
	ErrLoginFailed          = errors.New("邮箱或密码错误")
	ErrAccountDisabled      = errors.New("账号已被禁用")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrRestaurantNotFound   = errors.New("餐厅不存在")
	ErrMenuItemInvalid      = errors.New("菜单项不存在或不可售")
	ErrCartEmpty            = errors.New("购物车为空")
	ErrMinOrderAmount       = errors.New("未达到最低下单金额")
	ErrPaymentMethodUnknown = errors.New("不支持的支付方式")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderStatusInvalid   = errors.New("订单状态流转不合法")
	ErrReviewInvalid        = errors.New("评价参数不合法")
	ErrGiftCouponConflict   = errors.New("礼品券已被使用")
	ErrCheckoutConflict     = errors.New("结算冲突，请重试")
	ErrQRPaymentUnavailable = errors.New("扫码支付暂不可用")
)
