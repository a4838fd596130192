package service

import (
	"strings"

	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"
)

// ReviewService 餐厅评价服务
type ReviewService struct {
	reviewRepo     repository.ReviewRepository
	restaurantRepo repository.RestaurantRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, restaurantRepo repository.RestaurantRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		restaurantRepo: restaurantRepo,
	}
}

// SubmitReview 提交评价并同步餐厅平均分
func (s *ReviewService) SubmitReview(userID, restaurantID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrReviewInvalid
	}
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	review := &models.Review{
		RestaurantID: restaurantID,
		UserID:       userID,
		Rating:       rating,
		Comment:      strings.TrimSpace(comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	avg, total, err := s.reviewRepo.AverageRating(restaurantID)
	if err != nil {
		logger.Warnw("review_rating_recalc_failed", "restaurant_id", restaurantID, "error", err)
		return review, nil
	}
	if err := s.restaurantRepo.UpdateRating(restaurantID, avg); err != nil {
		logger.Warnw("review_rating_update_failed", "restaurant_id", restaurantID, "error", err)
	} else {
		logger.Infow("restaurant_rating_updated", "restaurant_id", restaurantID, "rating", avg, "reviews", total)
	}
	return review, nil
}

// ListReviews 餐厅评价列表
func (s *ReviewService) ListReviews(restaurantID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewListFilter{
		Page:         page,
		PageSize:     pageSize,
		RestaurantID: restaurantID,
	})
}
