package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveOrderStatus(t *testing.T) {
	today := date(2024, time.July, 15)

	item := func(dep, ret time.Time) OrderItem {
		return OrderItem{DepartureDate: dep, ReturnDate: ret}
	}

	tests := []struct {
		name  string
		items []OrderItem
		want  string
	}{
		{
			name:  "all items returned before today",
			items: []OrderItem{item(date(2024, time.July, 1), date(2024, time.July, 5)), item(date(2024, time.July, 3), date(2024, time.July, 10))},
			want:  StatusCompleted,
		},
		{
			name:  "return today is not completed yet",
			items: []OrderItem{item(date(2024, time.July, 10), date(2024, time.July, 15))},
			want:  StatusInVacation,
		},
		{
			name:  "departure today starts the vacation",
			items: []OrderItem{item(date(2024, time.July, 15), date(2024, time.July, 20))},
			want:  StatusInVacation,
		},
		{
			name:  "one finished one ongoing",
			items: []OrderItem{item(date(2024, time.July, 1), date(2024, time.July, 5)), item(date(2024, time.July, 14), date(2024, time.July, 20))},
			want:  StatusInVacation,
		},
		{
			name:  "all in the future",
			items: []OrderItem{item(date(2024, time.August, 1), date(2024, time.August, 5))},
			want:  StatusWaiting,
		},
		{
			name:  "no items",
			items: nil,
			want:  StatusWaiting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveOrderStatus(today, tt.items))
		})
	}
}

func TestDeriveOrderStatusIgnoresTimeOfDay(t *testing.T) {
	// полночь не должна влиять: сравниваются календарные даты
	today := time.Date(2024, time.July, 15, 23, 59, 0, 0, time.UTC)
	items := []OrderItem{{
		DepartureDate: time.Date(2024, time.July, 15, 0, 30, 0, 0, time.UTC),
		ReturnDate:    date(2024, time.July, 20),
	}}

	assert.Equal(t, StatusInVacation, DeriveOrderStatus(today, items))
}
