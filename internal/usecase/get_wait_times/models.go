package get_wait_times

import "github.com/m04kA/SMC-QueueService/internal/domain"

// CurrentQueue текущее состояние очереди
type CurrentQueue struct {
	Waiting       int
	InService     int
	ActiveBarbers int
}

// Estimates оценки времени ожидания
type Estimates struct {
	NewWalkinWaitMinutes int
	AvgServiceMinutes    int
	HistoryWindowDays    int
	SampleCount          int
}

// TodayStats статистика посещений за сегодня
// BusiestHour nil, если сегодня еще не было чекинов
type TodayStats struct {
	TotalCustomers     int
	BusiestHour        *string
	HourlyDistribution map[string]int
}

// Response подробная сводка ожидания для табло и дашборда
type Response struct {
	CurrentQueue   CurrentQueue
	Estimates      Estimates
	TodayStats     TodayStats
	Recommendation domain.WaitRecommendation
}
