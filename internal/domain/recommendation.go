package domain

// WaitLevel уровень загруженности очереди
type WaitLevel string

const (
	WaitLevelLow      WaitLevel = "low"
	WaitLevelModerate WaitLevel = "moderate"
	WaitLevelBusy     WaitLevel = "busy"
	WaitLevelVeryBusy WaitLevel = "very_busy"
)

// WaitRecommendation рекомендация для клиента на основе оценки ожидания
type WaitRecommendation struct {
	Level   WaitLevel
	Message string
	Color   string
}

// RecommendationForWait возвращает рекомендацию по оценке ожидания в минутах
// Пороги фиксированные: <=10 low, <=25 moderate, <=45 busy, иначе very_busy
func RecommendationForWait(waitMinutes float64) WaitRecommendation {
	switch {
	case waitMinutes <= WaitLevelLowMaxMinutes:
		return WaitRecommendation{
			Level:   WaitLevelLow,
			Message: "Almost no wait - great time to come in!",
			Color:   "green",
		}
	case waitMinutes <= WaitLevelModerateMaxMinutes:
		return WaitRecommendation{
			Level:   WaitLevelModerate,
			Message: "Short wait expected",
			Color:   "yellow",
		}
	case waitMinutes <= WaitLevelBusyMaxMinutes:
		return WaitRecommendation{
			Level:   WaitLevelBusy,
			Message: "Moderate wait - consider booking appointment",
			Color:   "orange",
		}
	default:
		return WaitRecommendation{
			Level:   WaitLevelVeryBusy,
			Message: "Long wait - we recommend booking an appointment",
			Color:   "red",
		}
	}
}
