package public

import (
	"github.com/foodiehub/internal/http/response"
	"github.com/foodiehub/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	CouponCode      string `json:"coupon_code"`
	DeliveryAddress string `json:"delivery_address"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	result, err := h.CheckoutService.Checkout(c.Request.Context(), service.CheckoutInput{
		SessionID:       sessionID,
		UserID:          userID,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, result)
}

// CheckoutPreviewRequest 结算试算请求
type CheckoutPreviewRequest struct {
	CouponCode string `json:"coupon_code"`
}

// CheckoutPreview 结算试算（仅展示，不落单）
func (h *Handler) CheckoutPreview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	var req CheckoutPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	preview, err := h.CheckoutService.Preview(c.Request.Context(), sessionID, userID, req.CouponCode)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, preview)
}
