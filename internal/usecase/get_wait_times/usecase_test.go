package get_wait_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	waittimeModels "github.com/m04kA/SMC-QueueService/internal/service/waittime/models"
)

type fakeEstimator struct {
	estimate *waittimeModels.DetailedEstimate
}

func (f *fakeEstimator) Detailed(_ context.Context) (*waittimeModels.DetailedEstimate, error) {
	return f.estimate, nil
}

type fakeQueueRepo struct {
	entries []*domain.QueueEntry
}

func (f *fakeQueueRepo) ListCheckedInBetween(_ context.Context, _, _ time.Time) ([]*domain.QueueEntry, error) {
	return f.entries, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func checkIn(hour int) *domain.QueueEntry {
	return &domain.QueueEntry{
		CheckInTime: time.Date(2026, 8, 30, hour, 15, 0, 0, time.UTC),
	}
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 8, 30, 16, 0, 0, 0, time.UTC)

	estimate := &waittimeModels.DetailedEstimate{
		Waiting:           4,
		InService:         1,
		ActiveBarbers:     2,
		AvgServiceMinutes: 27.4,
		SampleCount:       9,
		TotalMinutes:      61.65,
		Recommendation:    domain.RecommendationForWait(61.65),
	}

	repo := &fakeQueueRepo{entries: []*domain.QueueEntry{
		checkIn(10),
		checkIn(14),
		checkIn(14),
		checkIn(14),
		checkIn(16),
	}}

	uc := NewUseCase(&fakeEstimator{estimate: estimate}, repo, fixedTimeProvider{now: now}, noopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, resp.CurrentQueue.Waiting)
	assert.Equal(t, 1, resp.CurrentQueue.InService)
	assert.Equal(t, 2, resp.CurrentQueue.ActiveBarbers)

	assert.Equal(t, 62, resp.Estimates.NewWalkinWaitMinutes)
	assert.Equal(t, 27, resp.Estimates.AvgServiceMinutes)
	assert.Equal(t, domain.HistoryWindowDays, resp.Estimates.HistoryWindowDays)
	assert.Equal(t, 9, resp.Estimates.SampleCount)

	assert.Equal(t, 5, resp.TodayStats.TotalCustomers)
	require.NotNil(t, resp.TodayStats.BusiestHour)
	assert.Equal(t, "14:00", *resp.TodayStats.BusiestHour)
	assert.Equal(t, map[string]int{"10:00": 1, "14:00": 3, "16:00": 1}, resp.TodayStats.HourlyDistribution)

	assert.Equal(t, domain.WaitLevelVeryBusy, resp.Recommendation.Level)
}

func TestUseCase_Execute_EmptyDay(t *testing.T) {
	estimate := &waittimeModels.DetailedEstimate{
		AvgServiceMinutes: 25,
		Recommendation:    domain.RecommendationForWait(0),
	}

	uc := NewUseCase(
		&fakeEstimator{estimate: estimate},
		&fakeQueueRepo{},
		fixedTimeProvider{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)},
		noopLogger{},
	)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TodayStats.TotalCustomers)
	assert.Nil(t, resp.TodayStats.BusiestHour)
	assert.Empty(t, resp.TodayStats.HourlyDistribution)
}
