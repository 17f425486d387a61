package models

import "github.com/m04kA/SMC-QueueService/internal/domain"

// DetailedEstimate результат детального режима оценки ожидания
// Промежуточные значения хранятся с полной точностью; округление
// до минут выполняется на границе API
type DetailedEstimate struct {
	Waiting       int
	InService     int
	ActiveBarbers int

	// AvgServiceMinutes средняя длительность обслуживания за историческое
	// окно; равна domain.FixedServiceMinutes, если выборка пуста
	AvgServiceMinutes float64
	SampleCount       int

	CurrentWaitMinutes float64
	QueueWaitMinutes   float64
	TotalMinutes       float64

	Recommendation domain.WaitRecommendation
}
