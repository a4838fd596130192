package public

import (
	"errors"

	handlershared "github.com/foodiehub/internal/http/handlers/shared"
	"github.com/foodiehub/internal/http/response"
	"github.com/foodiehub/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrMinOrderAmount, code: response.CodeBadRequest, key: "error.min_order_amount"},
	{target: service.ErrPaymentMethodUnknown, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: service.ErrQRPaymentUnavailable, code: response.CodeBadRequest, key: "error.qr_payment_unavailable"},
	{target: service.ErrGiftCouponConflict, code: response.CodeConflict, key: "error.gift_coupon_failed"},
	{target: service.ErrCheckoutConflict, code: response.CodeConflict, key: "error.checkout_failed"},
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrLoginFailed, code: response.CodeUnauthorized, key: "error.login_failed"},
	{target: service.ErrAccountDisabled, code: response.CodeForbidden, key: "error.account_disabled"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

var menuErrorRules = []mappedHandlerError{
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
	{target: service.ErrMenuItemInvalid, code: response.CodeBadRequest, key: "error.menu_item_invalid"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrReviewInvalid, code: response.CodeBadRequest, key: "error.review_invalid"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
}
