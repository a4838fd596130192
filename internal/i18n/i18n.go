package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEN 英文
	LocaleEN = "en"
	// LocaleZH 简体中文
	LocaleZH = "zh-CN"

	defaultLocale = LocaleEN
	localeHeader  = "Accept-Language"
	localeQuery   = "locale"
)

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "access denied",
		"error.not_found":              "resource not found",
		"error.internal":               "internal error",
		"error.user_id_invalid":        "invalid user id",
		"error.user_id_type_invalid":   "invalid user id type",
		"error.session_missing":        "session is missing",
		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.signup_failed":          "signup failed, please try again",
		"error.email_exists":           "email already registered",
		"error.login_failed":           "invalid email or password",
		"error.account_disabled":       "account is disabled",
		"error.captcha_invalid":        "captcha verification failed",
		"error.restaurant_not_found":   "restaurant not found",
		"error.menu_item_invalid":      "invalid menu item",
		"error.cart_empty":             "your cart is empty",
		"error.min_order_amount":       "minimum order amount should be 100 to place an order",
		"error.payment_method_invalid": "unsupported payment method",
		"error.checkout_failed":        "checkout failed",
		"error.order_not_found":        "order not found",
		"error.order_status_invalid":   "invalid order status transition",
		"error.review_invalid":         "invalid review",
		"error.gift_coupon_failed":     "gift coupon operation failed",
		"error.qr_payment_unavailable": "QR payment is not available",
		"error.order_fetch_failed":        "failed to load orders",
		"error.order_update_failed":       "failed to update order",
		"error.captcha_generate_failed":   "failed to generate captcha",
		"error.jwt_secret_missing":        "server auth is not configured",
		"error.token_invalid":             "invalid or expired token",
		"error.auth_header_missing":       "authorization header is missing",
		"error.auth_header_invalid":       "authorization header is invalid",
		"error.user_disabled":             "account is disabled",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数无效",
		"error.unauthorized":           "未登录或登录已过期",
		"error.forbidden":              "没有访问权限",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务内部错误",
		"error.user_id_invalid":        "用户标识无效",
		"error.user_id_type_invalid":   "用户标识类型无效",
		"error.session_missing":        "会话标识缺失",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后重试",
		"error.signup_failed":          "注册失败，请稍后重试",
		"error.email_exists":           "邮箱已被注册",
		"error.login_failed":           "邮箱或密码错误",
		"error.account_disabled":       "账号已被禁用",
		"error.captcha_invalid":        "验证码校验失败",
		"error.restaurant_not_found":   "餐厅不存在",
		"error.menu_item_invalid":      "菜品无效",
		"error.cart_empty":             "购物车是空的",
		"error.min_order_amount":       "订单金额不足 100，无法下单",
		"error.payment_method_invalid": "不支持的支付方式",
		"error.checkout_failed":        "下单失败",
		"error.order_not_found":        "订单不存在",
		"error.order_status_invalid":   "订单状态流转不合法",
		"error.review_invalid":         "评价内容无效",
		"error.gift_coupon_failed":     "刮刮卡操作失败",
		"error.qr_payment_unavailable": "扫码支付暂不可用",
		"error.order_fetch_failed":        "订单查询失败",
		"error.order_update_failed":       "订单更新失败",
		"error.captcha_generate_failed":   "验证码生成失败",
		"error.jwt_secret_missing":        "服务端未配置鉴权密钥",
		"error.token_invalid":             "token 无效或已过期",
		"error.auth_header_missing":       "缺少 Authorization 请求头",
		"error.auth_header_invalid":       "Authorization 请求头格式错误",
		"error.user_disabled":             "账号已被禁用",
	},
}

// ResolveLocale 从请求解析语言（query 优先于 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if locale := normalizeLocale(c.Query(localeQuery)); locale != "" {
		return locale
	}
	if locale := normalizeLocale(c.GetHeader(localeHeader)); locale != "" {
		return locale
	}
	return defaultLocale
}

// T 返回指定语言的文案；缺失时回落英文，最终回落 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[normalizeLocale(locale)]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带格式化参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	// Accept-Language 可能携带权重列表，只取第一项
	if idx := strings.IndexAny(raw, ",;"); idx >= 0 {
		raw = raw[:idx]
	}
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(lowered, "zh"):
		return LocaleZH
	case strings.HasPrefix(lowered, "en"):
		return LocaleEN
	default:
		return ""
	}
}
