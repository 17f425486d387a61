package domain

// Константы оценки времени ожидания
const (
	// FixedServiceMinutes фиксированная средняя длительность обслуживания,
	// используется простым режимом оценки и как fallback детального режима
	FixedServiceMinutes = 25

	// InProgressCompletionFactor доля, на которую в среднем завершены
	// уже идущие обслуживания
	InProgressCompletionFactor = 0.5

	// HistoryWindowDays окно исторической выборки завершенных заказов
	// для вычисления средней длительности обслуживания
	HistoryWindowDays = 7
)

// Пороги уровней загруженности (минуты, включительно)
const (
	WaitLevelLowMaxMinutes      = 10
	WaitLevelModerateMaxMinutes = 25
	WaitLevelBusyMaxMinutes     = 45
)

// Ограничения входных данных
const (
	MaxCustomerNameLength = 255
	MaxServiceNotesLength = 500
	MaxPhoneLength        = 32
)

// Формат времени для ответов API
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
