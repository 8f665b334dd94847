package domain

import "time"

// Product описывает товар каталога (предложение отдыха).
// Цена хранится в копейках за ночь.
type Product struct {
	ID           int64
	Name         string
	Description  string
	CategoryID   int64
	Price        int64
	IsActive     bool
	Images       []ProductImage
	MonthConfigs []MonthConfig
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ProductImage — изображение товара. Не более одного IsMain на товар.
type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	IsMain    bool
}

// MonthConfig — помесячное переопределение цены и доступности.
// Применяется, когда дата начала бронирования попадает в MonthNumber.
type MonthConfig struct {
	ID           int64
	ProductID    int64
	MonthNumber  int // 1..12
	IsAvailable  bool
	SpecialPrice int64 // в копейках, 0 — нет переопределения цены
}

func NewProduct(name, description string, price int64, categoryID int64) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		IsActive:    true,
	}
}

// MainImageURL возвращает URL главного изображения или пустую строку.
func (p *Product) MainImageURL() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.URL
		}
	}
	return ""
}

// ImageURLs возвращает URL всех изображений в исходном порядке.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
