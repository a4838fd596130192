package service

import (
	"strings"

	"github.com/foodiehub/internal/constants"
	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"
	"github.com/foodiehub/internal/queue"
	"github.com/foodiehub/internal/repository"
)

// allowedTransitions 配送状态流转表
var allowedTransitions = map[string][]string{
	constants.TrackingStatusPlaced:    {constants.TrackingStatusPreparing},
	constants.TrackingStatusPreparing: {constants.TrackingStatusOnTheWay},
	constants.TrackingStatusOnTheWay:  {constants.TrackingStatusDelivered},
	constants.TrackingStatusDelivered: {},
}

// OrderService 订单查询与状态服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// ListMyOrders 用户订单列表
func (s *OrderService) ListMyOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(userID, page, pageSize)
}

// GetMyOrder 用户订单详情（含轨迹）
func (s *OrderService) GetMyOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetMyOrderTracking 用户订单配送轨迹
func (s *OrderService) GetMyOrderTracking(orderID uint, userID uint) ([]models.OrderTracking, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.orderRepo.GetTracking(orderID)
}

// ListOrdersAdmin 管理端订单列表
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderAdmin 管理端订单详情
func (s *OrderService) GetOrderAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdvanceTrackingStatus 推进配送状态，非法流转拒绝
func (s *OrderService) AdvanceTrackingStatus(orderID uint, newStatus string) (*models.OrderTracking, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	current, err := s.orderRepo.LatestTrackingStatus(orderID)
	if err != nil {
		return nil, err
	}

	newStatus = normalizeTrackingStatus(newStatus)
	if newStatus == "" || !isTransitionAllowed(current, newStatus) {
		return nil, ErrOrderStatusInvalid
	}

	tracking := &models.OrderTracking{
		OrderID: orderID,
		Status:  newStatus,
	}
	if err := s.orderRepo.AppendTracking(tracking); err != nil {
		return nil, err
	}

	logger.Infow("order_status_advanced",
		"order_id", orderID,
		"from", current,
		"to", newStatus,
	)

	if s.queueClient != nil && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
			OrderID: orderID,
			Status:  newStatus,
		}); err != nil {
			logger.Errorw("order_status_enqueue_notify_failed", "order_id", orderID, "error", err)
		}
	}

	return tracking, nil
}

// normalizeTrackingStatus 把外部输入归一到标准状态值
func normalizeTrackingStatus(status string) string {
	trimmed := strings.TrimSpace(status)
	for _, known := range []string{
		constants.TrackingStatusPlaced,
		constants.TrackingStatusPreparing,
		constants.TrackingStatusOnTheWay,
		constants.TrackingStatusDelivered,
	} {
		if strings.EqualFold(trimmed, known) {
			return known
		}
	}
	return ""
}

func isTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	for _, next := range nexts {
		if next == target {
			return true
		}
	}
	return false
}
