package main

import (
	"github.com/foodiehub/internal/config"
	"github.com/foodiehub/internal/logger"
	"github.com/foodiehub/internal/models"

	"github.com/shopspring/decimal"
)

type seedMenuItem struct {
	name     string
	category string
	price    float64
}

type seedRestaurant struct {
	name        string
	cuisine     string
	description string
	rating      float64
	items       []seedMenuItem
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	restaurants := []seedRestaurant{
		{
			name:    "Spice Villa",
			cuisine: "Indian",
			description: "North Indian classics and tandoor specials.",
			rating:  4.6,
			items: []seedMenuItem{
				{name: "Butter Chicken", category: "Mains", price: 260},
				{name: "Paneer Tikka", category: "Starters", price: 180},
				{name: "Garlic Naan", category: "Breads", price: 45},
				{name: "Mango Lassi", category: "Drinks", price: 80},
			},
		},
		{
			name:    "Dragon Wok",
			cuisine: "Chinese",
			description: "Wok-fired Sichuan and Cantonese favourites.",
			rating:  4.3,
			items: []seedMenuItem{
				{name: "Kung Pao Chicken", category: "Mains", price: 220},
				{name: "Vegetable Fried Rice", category: "Rice", price: 150},
				{name: "Spring Rolls", category: "Starters", price: 110},
				{name: "Hot and Sour Soup", category: "Soups", price: 95},
			},
		},
		{
			name:    "Bella Napoli",
			cuisine: "Italian",
			description: "Wood-fired pizza and fresh handmade pasta.",
			rating:  4.8,
			items: []seedMenuItem{
				{name: "Margherita Pizza", category: "Pizza", price: 240},
				{name: "Spaghetti Carbonara", category: "Pasta", price: 210},
				{name: "Tiramisu", category: "Desserts", price: 130},
				{name: "Bruschetta", category: "Starters", price: 90},
			},
		},
	}

	for _, seed := range restaurants {
		var existing models.Restaurant
		if err := models.DB.Where("name = ?", seed.name).First(&existing).Error; err == nil {
			stdLog.Printf("Restaurant already exists: %s", seed.name)
			continue
		}

		restaurant := models.Restaurant{
			Name:    seed.name,
			Cuisine: seed.cuisine,
			Description: seed.description,
			Rating:  seed.rating,
			Enabled: true,
		}
		for _, item := range seed.items {
			restaurant.MenuItems = append(restaurant.MenuItems, models.MenuItem{
				Name:      item.name,
				Category:  item.category,
				Price:     models.NewMoneyFromDecimal(decimal.NewFromFloat(item.price)),
				Available: true,
			})
		}
		if err := models.DB.Create(&restaurant).Error; err != nil {
			stdLog.Printf("Failed to create restaurant %s: %v", seed.name, err)
			continue
		}
		stdLog.Printf("Created restaurant: %s (%d menu items)", seed.name, len(restaurant.MenuItems))
	}

	// 初始化默认管理员账号
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	stdLog.Printf("Seed finished")
}
