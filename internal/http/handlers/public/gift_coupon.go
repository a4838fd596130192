package public

import (
	"github.com/foodiehub/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ScratchGiftCoupon 刮刮卡抽奖
func (h *Handler) ScratchGiftCoupon(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.GiftCouponService.Scratch(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, result)
}

// ListGiftCoupons 我的礼品券列表
func (h *Handler) ListGiftCoupons(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	coupons, err := h.GiftCouponService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, coupons)
}
