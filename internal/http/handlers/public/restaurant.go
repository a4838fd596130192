package public

import (
	"strconv"

	"github.com/foodiehub/internal/http/response"
	"github.com/foodiehub/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListRestaurants 餐厅列表
func (h *Handler) ListRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	restaurants, total, err := h.MenuService.ListRestaurants(repository.RestaurantListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Cuisine:  c.Query("cuisine"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, restaurants, response.NewPagination(page, pageSize, total))
}

// GetRestaurantMenu 餐厅详情与菜单
func (h *Handler) GetRestaurantMenu(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.restaurant_not_found", nil)
		return
	}

	restaurant, err := h.MenuService.GetRestaurantMenu(uint(id))
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, restaurant)
}

// SearchMenuItems 菜品搜索
func (h *Handler) SearchMenuItems(c *gin.Context) {
	items, err := h.MenuService.SearchMenuItems(c.Query("q"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, items)
}
