package domain

import "time"

// Barber мастер барбершопа
type Barber struct {
	ID             int64
	Name           string
	Phone          *string
	Email          *string
	CommissionRate float64
	Specialties    *string
	IsActive       bool
	IsAvailable    bool
	CreatedAt      time.Time
}

// BarberStatus производный статус мастера
// Вычисляется в одном месте (DeriveBarberStatus) из слабо связанных
// сигналов: флага доступности, активных заказов, перерыва и записи
// о начале смены
type BarberStatus string

const (
	BarberAvailable  BarberStatus = "available"
	BarberBusy       BarberStatus = "busy"
	BarberOnBreak    BarberStatus = "on_break"
	BarberClockedOut BarberStatus = "clocked_out"
)

// BarberSignals сырые сигналы о состоянии мастера из хранилища
type BarberSignals struct {
	IsAvailable      bool
	ClockedIn        bool // есть открытая запись timeclock за сегодня
	OnBreak          bool // есть открытый перерыв
	InProgressOrders int  // количество заказов в статусе in_progress
}

// DeriveBarberStatus единственная точка вычисления статуса мастера
// Приоритет: смена не начата > занят заказом > на перерыве > доступен.
// Мастер на смене со снятым флагом доступности, без заказа и без перерыва,
// сводится к clocked_out: отдельного статуса "unavailable" в наборе нет,
// а для очереди такой мастер клиентов не принимает
func DeriveBarberStatus(s BarberSignals) BarberStatus {
	if !s.ClockedIn {
		return BarberClockedOut
	}
	if s.InProgressOrders > 0 {
		return BarberBusy
	}
	if s.OnBreak {
		return BarberOnBreak
	}
	if s.IsAvailable {
		return BarberAvailable
	}
	return BarberClockedOut
}
