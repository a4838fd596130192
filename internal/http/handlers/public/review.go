package public

import (
	"strconv"

	"github.com/foodiehub/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 评价提交请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitReview 提交餐厅评价
func (h *Handler) SubmitReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.restaurant_not_found", nil)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	review, err := h.ReviewService.SubmitReview(userID, uint(restaurantID), req.Rating, req.Comment)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, review)
}

// ListReviews 餐厅评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		respondError(c, response.CodeBadRequest, "error.restaurant_not_found", nil)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize > 100 {
		pageSize = 100
	}

	reviews, total, err := h.ReviewService.ListReviews(uint(restaurantID), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}
