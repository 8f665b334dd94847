package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	CategoryID  int64      `db:"category_id"`
	Price       int64      `db:"price"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// ProductImageModel представляет запись таблицы product_images.
type ProductImageModel struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	URL       string `db:"url"`
	IsMain    bool   `db:"is_main"`
}

// MonthConfigModel представляет запись таблицы product_month_configs.
type MonthConfigModel struct {
	ID           int64 `db:"id"`
	ProductID    int64 `db:"product_id"`
	MonthNumber  int   `db:"month_number"`
	IsAvailable  bool  `db:"is_available"`
	SpecialPrice int64 `db:"special_price"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID           int64      `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	IsAdmin      bool       `db:"is_admin"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	OrderDate time.Time `db:"order_date"`
	OrderSum  int64     `db:"order_sum"`
	Status    string    `db:"status"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID            int64     `db:"id"`
	OrderID       int64     `db:"order_id"`
	ProductID     int64     `db:"product_id"`
	ProductName   string    `db:"product_name"`
	ImageURL      string    `db:"image_url"`
	Quantity      int       `db:"quantity"`
	DepartureDate time.Time `db:"departure_date"`
	ReturnDate    time.Time `db:"return_date"`
	NightsCount   int       `db:"nights_count"`
	PricePerUnit  int64     `db:"price_per_unit"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
