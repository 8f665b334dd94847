package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"three nights", date(2024, time.July, 10), date(2024, time.July, 13), 3},
		{"single night", date(2024, time.July, 10), date(2024, time.July, 11), 1},
		{"same day", date(2024, time.July, 10), date(2024, time.July, 10), 0},
		{"end before start", date(2024, time.July, 13), date(2024, time.July, 10), 0},
		{"partial day rounds up", time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC), date(2024, time.July, 12), 2},
		{"zero start", time.Time{}, date(2024, time.July, 13), 0},
		{"zero end", date(2024, time.July, 10), time.Time{}, 0},
		{"across month boundary", date(2024, time.July, 30), date(2024, time.August, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.start, tt.end))
		})
	}
}

func TestEffectiveNightlyPrice(t *testing.T) {
	configs := []MonthConfig{
		{MonthNumber: 7, IsAvailable: true, SpecialPrice: 15000},
		{MonthNumber: 8, IsAvailable: false, SpecialPrice: 20000},
		{MonthNumber: 9, IsAvailable: true, SpecialPrice: 0},
	}

	tests := []struct {
		name  string
		start time.Time
		want  int64
	}{
		{"override applies", date(2024, time.July, 10), 15000},
		{"unavailable month falls back", date(2024, time.August, 10), 10000},
		{"zero special price falls back", date(2024, time.September, 10), 10000},
		{"month without config falls back", date(2024, time.June, 10), 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveNightlyPrice(tt.start, 10000, configs))
		})
	}

	t.Run("no configs", func(t *testing.T) {
		assert.Equal(t, int64(10000), EffectiveNightlyPrice(date(2024, time.July, 10), 10000, nil))
	})

	t.Run("only start month is consulted", func(t *testing.T) {
		// бронирование начинается в июне и заканчивается в июле —
		// июльское переопределение не применяется
		got := EffectiveNightlyPrice(date(2024, time.June, 28), 10000, configs)
		assert.Equal(t, int64(10000), got)
	})
}

func TestTotalAmount(t *testing.T) {
	configs := []MonthConfig{
		{MonthNumber: 7, IsAvailable: true, SpecialPrice: 15000},
	}

	t.Run("reference example", func(t *testing.T) {
		// база 100, июльское переопределение 150, 3 ночи, 2 участника => 900
		got := TotalAmount(date(2024, time.July, 10), date(2024, time.July, 13), 10000, 2, configs)
		assert.Equal(t, int64(90000), got)
	})

	t.Run("base price when no override", func(t *testing.T) {
		got := TotalAmount(date(2024, time.June, 1), date(2024, time.June, 4), 10000, 1, configs)
		assert.Equal(t, int64(30000), got)
	})

	t.Run("zero nights means zero total", func(t *testing.T) {
		got := TotalAmount(date(2024, time.July, 13), date(2024, time.July, 10), 10000, 2, configs)
		assert.Equal(t, int64(0), got)
	})

	t.Run("missing dates mean zero total", func(t *testing.T) {
		assert.Equal(t, int64(0), TotalAmount(time.Time{}, date(2024, time.July, 13), 10000, 2, configs))
		assert.Equal(t, int64(0), TotalAmount(date(2024, time.July, 10), time.Time{}, 10000, 2, configs))
	})
}
