package converter

import "time"

// ProductRedisModel — представление товара в кэше Redis.
type ProductRedisModel struct {
	ID           int64                    `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	CategoryID   int64                    `json:"category_id"`
	Price        int64                    `json:"price"`
	IsActive     bool                     `json:"is_active"`
	Images       []ProductImageRedisModel `json:"images,omitempty"`
	MonthConfigs []MonthConfigRedisModel  `json:"month_configs,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    *time.Time               `json:"updated_at,omitempty"`
}

type ProductImageRedisModel struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
	IsMain    bool   `json:"is_main"`
}

type MonthConfigRedisModel struct {
	ID           int64 `json:"id"`
	ProductID    int64 `json:"product_id"`
	MonthNumber  int   `json:"month_number"`
	IsAvailable  bool  `json:"is_available"`
	SpecialPrice int64 `json:"special_price"`
}
