package get_wait_times

import (
	usecase "github.com/m04kA/SMC-QueueService/internal/usecase/get_wait_times"
)

// CurrentQueue текущее состояние очереди
type CurrentQueue struct {
	Waiting       int `json:"waiting"`
	InService     int `json:"inService"`
	ActiveBarbers int `json:"activeBarbers"`
}

// Estimates оценки времени ожидания
type Estimates struct {
	NewWalkinWaitMinutes int `json:"newWalkinWaitMinutes"`
	AvgServiceMinutes    int `json:"avgServiceMinutes"`
	HistoryWindowDays    int `json:"historyWindowDays"`
	SampleCount          int `json:"sampleCount"`
}

// TodayStats статистика чекинов за сегодня
type TodayStats struct {
	TotalCustomers     int            `json:"totalCustomers"`
	BusiestHour        *string        `json:"busiestHour"`
	HourlyDistribution map[string]int `json:"hourlyDistribution"`
}

// Recommendation рекомендация для нового клиента
type Recommendation struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Color   string `json:"color"`
}

// WaitTimesResponse подробная сводка ожидания
type WaitTimesResponse struct {
	CurrentQueue   CurrentQueue   `json:"currentQueue"`
	Estimates      Estimates      `json:"estimates"`
	TodayStats     TodayStats     `json:"todayStats"`
	Recommendation Recommendation `json:"recommendation"`
}

// FromUseCaseResponse конвертирует модель use case в DTO
func FromUseCaseResponse(resp *usecase.Response) *WaitTimesResponse {
	return &WaitTimesResponse{
		CurrentQueue: CurrentQueue{
			Waiting:       resp.CurrentQueue.Waiting,
			InService:     resp.CurrentQueue.InService,
			ActiveBarbers: resp.CurrentQueue.ActiveBarbers,
		},
		Estimates: Estimates{
			NewWalkinWaitMinutes: resp.Estimates.NewWalkinWaitMinutes,
			AvgServiceMinutes:    resp.Estimates.AvgServiceMinutes,
			HistoryWindowDays:    resp.Estimates.HistoryWindowDays,
			SampleCount:          resp.Estimates.SampleCount,
		},
		TodayStats: TodayStats{
			TotalCustomers:     resp.TodayStats.TotalCustomers,
			BusiestHour:        resp.TodayStats.BusiestHour,
			HourlyDistribution: resp.TodayStats.HourlyDistribution,
		},
		Recommendation: Recommendation{
			Level:   string(resp.Recommendation.Level),
			Message: resp.Recommendation.Message,
			Color:   resp.Recommendation.Color,
		},
	}
}
