package domain

import (
	"math"
	"time"
)

// Правила расчёта стоимости бронирования. Единая реализация для всех
// слоёв: HTTP-хендлеры, usecase заказов и фоновые задачи считают цену
// только через эти функции.

const nanosPerDay = float64(24 * time.Hour)

// Nights возвращает число ночей между start и end: ceil разницы в днях,
// не меньше нуля. Нулевые даты дают 0.
func Nights(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}

	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}

	return int(math.Ceil(float64(diff) / nanosPerDay))
}

// EffectiveNightlyPrice возвращает цену за ночь с учётом помесячных
// переопределений: если для месяца даты начала есть доступный конфиг
// со SpecialPrice > 0, берётся он, иначе базовая цена. Месяц даты
// окончания не учитывается — прорейтинга через границу месяца нет.
func EffectiveNightlyPrice(start time.Time, basePrice int64, configs []MonthConfig) int64 {
	if start.IsZero() || len(configs) == 0 {
		return basePrice
	}

	startMonth := int(start.Month())
	for _, mc := range configs {
		if mc.MonthNumber == startMonth && mc.IsAvailable && mc.SpecialPrice > 0 {
			return mc.SpecialPrice
		}
	}

	return basePrice
}

// TotalAmount считает полную стоимость бронирования:
// ночи × эффективная цена за ночь × число участников.
func TotalAmount(start, end time.Time, basePrice int64, participants int, configs []MonthConfig) int64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}

	nights := Nights(start, end)
	if nights == 0 {
		return 0
	}

	return int64(nights) * EffectiveNightlyPrice(start, basePrice, configs) * int64(participants)
}
