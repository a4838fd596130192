package public

import (
	"strconv"

	"github.com/foodiehub/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListMyOrders 我的订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := h.OrderService.ListMyOrders(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetMyOrder 我的订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	order, err := h.OrderService.GetMyOrder(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// GetMyOrderTracking 我的订单配送状态
func (h *Handler) GetMyOrderTracking(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	tracking, err := h.OrderService.GetMyOrderTracking(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, tracking)
}
