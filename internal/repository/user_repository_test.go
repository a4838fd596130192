package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserRepository(db), db
}

func createRewardUser(t *testing.T, db *gorm.DB, points int64, eligible, used bool) models.User {
	t.Helper()
	user := models.User{
		Name:          "Reward User",
		Email:         fmt.Sprintf("reward_%d@example.com", time.Now().UnixNano()),
		PasswordHash:  "hash",
		Role:          constants.UserRoleCustomer,
		RewardPoints:  points,
		BonusEligible: eligible,
		BonusUsed:     used,
		Status:        constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestApplyRewardUpdateAccrueOnly(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRewardUser(t, db, 200, false, false)

	ok, err := repo.ApplyRewardUpdate(user.ID, 135, false)
	if err != nil {
		t.Fatalf("ApplyRewardUpdate failed: %v", err)
	}
	if !ok {
		t.Fatal("expected update to affect the row")
	}

	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 335 {
		t.Fatalf("expected 335 points, got %d", got.RewardPoints)
	}
	if got.BonusUsed {
		t.Fatal("bonus_used should stay false on accrue-only update")
	}
}

func TestApplyRewardUpdateConsumeBonus(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRewardUser(t, db, 1200, true, false)

	ok, err := repo.ApplyRewardUpdate(user.ID, 400, true)
	if err != nil {
		t.Fatalf("ApplyRewardUpdate failed: %v", err)
	}
	if !ok {
		t.Fatal("expected consume-bonus update to succeed")
	}

	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.RewardPoints != 600 {
		t.Fatalf("expected 1200-1000+400=600 points, got %d", got.RewardPoints)
	}
	if !got.BonusUsed {
		t.Fatal("bonus_used should be set when the bonus is consumed")
	}
}

func TestApplyRewardUpdateConsumeBonusGuards(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)

	cases := []struct {
		name     string
		points   int64
		eligible bool
		used     bool
	}{
		{"not_eligible", 1500, false, false},
		{"already_used", 1500, true, true},
		{"insufficient_points", 500, true, false},
	}

	for _, tc := range cases {
		user := createRewardUser(t, db, tc.points, tc.eligible, tc.used)
		ok, err := repo.ApplyRewardUpdate(user.ID, 100, true)
		if err != nil {
			t.Fatalf("%s: ApplyRewardUpdate failed: %v", tc.name, err)
		}
		if ok {
			t.Fatalf("%s: consume-bonus update should not affect the row", tc.name)
		}

		var got models.User
		if err := db.First(&got, user.ID).Error; err != nil {
			t.Fatalf("%s: reload user failed: %v", tc.name, err)
		}
		if got.RewardPoints != tc.points {
			t.Fatalf("%s: points changed to %d", tc.name, got.RewardPoints)
		}
	}
}

func TestUnlockBonusEligibility(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)

	below := createRewardUser(t, db, 999, false, false)
	ok, err := repo.UnlockBonusEligibility(below.ID)
	if err != nil {
		t.Fatalf("UnlockBonusEligibility failed: %v", err)
	}
	if ok {
		t.Fatal("unlock should not fire below the threshold")
	}

	ready := createRewardUser(t, db, 1000, false, false)
	ok, err = repo.UnlockBonusEligibility(ready.ID)
	if err != nil {
		t.Fatalf("UnlockBonusEligibility failed: %v", err)
	}
	if !ok {
		t.Fatal("unlock should fire at the threshold")
	}

	// 重复解锁不再写入
	ok, err = repo.UnlockBonusEligibility(ready.ID)
	if err != nil {
		t.Fatalf("UnlockBonusEligibility failed: %v", err)
	}
	if ok {
		t.Fatal("unlock should be a no-op once eligible")
	}
}
