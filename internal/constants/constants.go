package constants

// 订单跟踪状态
const (
	TrackingStatusPlaced    = "Placed"
	TrackingStatusPreparing = "Preparing"
	TrackingStatusOnTheWay  = "Out for Delivery"
	TrackingStatusDelivered = "Delivered"
)

// 支付方式
const (
	PaymentMethodCOD  = "COD"
	PaymentMethodCard = "CARD"
	PaymentMethodQR   = "QR"
)

// 优惠码
const (
	CouponCodeSave5   = "SAVE5"
	CouponCodeFirst10 = "FIRST10"

	// CouponLabelFirst10Auto 首单无码时自动套用的展示标签
	CouponLabelFirst10Auto = "FIRST10 (Auto Applied)"
)

// 积分与奖励规则
const (
	// BonusUnlockPoints 解锁 100 元奖励所需积分
	BonusUnlockPoints = 1000
	// BonusCostPoints 消耗奖励时扣除的积分
	BonusCostPoints = 1000
)

// 用户角色
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列与任务
const (
	QueueDefault          = "default"
	TaskOrderStatusNotify = "order:status_notify"
)

// 会话
const (
	// SessionCookieName 购物车会话 Cookie 名称
	SessionCookieName = "foodiehub_sid"
	// SessionCookieMaxAge 会话 Cookie 有效期（秒），与购物车 TTL 对齐
	SessionCookieMaxAge = 24 * 60 * 60
)
