package domain

import "time"

// Статусы заказа. Строки отображаются клиентом как есть.
const (
	StatusWaiting    = "waiting..."
	StatusInVacation = "In Vacation"
	StatusCompleted  = "Completed"
)

// Order — заказ пользователя. OrderSum хранится в копейках.
type Order struct {
	ID        int64
	UserID    int64
	OrderDate time.Time
	OrderSum  int64
	Status    string
	Items     []OrderItem
}

// OrderItem — позиция заказа со снимком данных товара на момент покупки.
type OrderItem struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	ProductName   string
	ImageURL      string
	Quantity      int
	DepartureDate time.Time
	ReturnDate    time.Time
	NightsCount   int
	PricePerUnit  int64
}

func NewOrder(userID int64, orderDate time.Time, items []OrderItem) *Order {
	return &Order{
		UserID:    userID,
		OrderDate: orderDate,
		Items:     items,
	}
}

// DeriveOrderStatus вычисляет статус заказа на дату today:
// Completed — все позиции уже завершились (дата возврата раньше today);
// In Vacation — хотя бы одна позиция началась (дата выезда не позже today);
// иначе — waiting. Заказ без позиций считается ожидающим.
func DeriveOrderStatus(today time.Time, items []OrderItem) string {
	if len(items) == 0 {
		return StatusWaiting
	}

	day := truncateToDay(today)

	allFinished := true
	hasStarted := false
	for _, item := range items {
		if !truncateToDay(item.ReturnDate).Before(day) {
			allFinished = false
		}
		if !truncateToDay(item.DepartureDate).After(day) {
			hasStarted = true
		}
	}

	switch {
	case allFinished:
		return StatusCompleted
	case hasStarted:
		return StatusInVacation
	default:
		return StatusWaiting
	}
}

// truncateToDay отбрасывает время, оставляя календарную дату.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
