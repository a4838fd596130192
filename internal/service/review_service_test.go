package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Restaurant{}, &models.Review{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewReviewService(repository.NewReviewRepository(db), repository.NewRestaurantRepository(db)), db
}

func TestSubmitReviewRejectsInvalidRating(t *testing.T) {
	svc, _ := setupReviewServiceTest(t)

	for _, rating := range []int{0, -1, 6} {
		if _, err := svc.SubmitReview(1, 1, rating, "meh"); !errors.Is(err, ErrReviewInvalid) {
			t.Fatalf("rating %d: want ErrReviewInvalid got %v", rating, err)
		}
	}
}

func TestSubmitReviewUnknownRestaurant(t *testing.T) {
	svc, _ := setupReviewServiceTest(t)

	if _, err := svc.SubmitReview(1, 999, 4, "good"); !errors.Is(err, ErrRestaurantNotFound) {
		t.Fatalf("want ErrRestaurantNotFound got %v", err)
	}
}

func TestSubmitReviewUpdatesAverageRating(t *testing.T) {
	svc, db := setupReviewServiceTest(t)

	restaurant := models.Restaurant{Name: "Spice Villa", Enabled: true}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("create restaurant failed: %v", err)
	}

	if _, err := svc.SubmitReview(1, restaurant.ID, 5, "great"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.SubmitReview(2, restaurant.ID, 2, "  slow delivery  "); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	var updated models.Restaurant
	if err := db.First(&updated, restaurant.ID).Error; err != nil {
		t.Fatalf("reload restaurant failed: %v", err)
	}
	if updated.Rating != 3.5 {
		t.Fatalf("rating want 3.5 got %v", updated.Rating)
	}

	reviews, total, err := svc.ListReviews(restaurant.ID, 1, 10)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if total != 2 || len(reviews) != 2 {
		t.Fatalf("want 2 reviews got total=%d len=%d", total, len(reviews))
	}
	for _, review := range reviews {
		if review.Comment == "slow delivery" {
			return
		}
	}
	t.Fatalf("comment should be trimmed before save")
}
