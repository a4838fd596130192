package service

import (
	"context"

	"github.com/foodiehub/internal/cart"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务，负责校验菜品并维护会话购物车
type CartService struct {
	cartStore    cart.Store
	menuItemRepo repository.MenuItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartStore cart.Store, menuItemRepo repository.MenuItemRepository) *CartService {
	return &CartService{
		cartStore:    cartStore,
		menuItemRepo: menuItemRepo,
	}
}

// CartViewLine 购物车展示行
type CartViewLine struct {
	ItemID       uint         `json:"item_id"`
	RestaurantID uint         `json:"restaurant_id"`
	Name         string       `json:"name"`
	PriceEach    models.Money `json:"price_each"`
	Quantity     int          `json:"quantity"`
	LineTotal    models.Money `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Lines    []CartViewLine `json:"lines"`
	Subtotal models.Money   `json:"subtotal"`
}

// View 展示会话购物车，目录缺失的菜品按 0 价展示
func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	lines, err := s.cartStore.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(lines)
}

// Add 把菜品加入购物车，菜品必须存在且可售
func (s *CartService) Add(ctx context.Context, sessionID string, itemID uint, quantity int) (*CartView, error) {
	item, err := s.menuItemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Available {
		return nil, ErrMenuItemInvalid
	}

	lines, err := s.cartStore.Add(ctx, sessionID, cart.Line{
		ItemID:       item.ID,
		Quantity:     quantity,
		RestaurantID: item.RestaurantID,
	})
	if err != nil {
		return nil, err
	}
	return s.buildView(lines)
}

// UpdateQuantity 调整购物车中菜品数量
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, itemID uint, quantity int) (*CartView, error) {
	lines, err := s.cartStore.UpdateQuantity(ctx, sessionID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	return s.buildView(lines)
}

// Remove 从购物车移除菜品
func (s *CartService) Remove(ctx context.Context, sessionID string, itemID uint) (*CartView, error) {
	lines, err := s.cartStore.Remove(ctx, sessionID, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildView(lines)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.cartStore.Clear(ctx, sessionID)
}

func (s *CartService) buildView(lines []cart.Line) (*CartView, error) {
	view := &CartView{Lines: make([]CartViewLine, 0, len(lines))}
	if len(lines) == 0 {
		view.Subtotal = models.NewMoneyFromDecimal(decimal.Zero)
		return view, nil
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	items, err := s.menuItemRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		viewLine := CartViewLine{
			ItemID:       line.ItemID,
			RestaurantID: line.RestaurantID,
			Name:         "Unknown Item",
			Quantity:     line.Quantity,
		}
		price := decimal.Zero
		if item, ok := byID[line.ItemID]; ok {
			viewLine.Name = item.Name
			price = item.Price.Decimal
		}
		lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		viewLine.PriceEach = models.NewMoneyFromDecimal(price)
		viewLine.LineTotal = models.NewMoneyFromDecimal(lineTotal)
		subtotal = subtotal.Add(lineTotal)
		view.Lines = append(view.Lines, viewLine)
	}
	view.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return view, nil
}
