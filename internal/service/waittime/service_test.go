package waittime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

type fakeQueueRepo struct {
	counts map[domain.QueueStatus]int
}

func (f *fakeQueueRepo) CountByStatus(_ context.Context, status domain.QueueStatus) (int, error) {
	return f.counts[status], nil
}

type fakeBarberRepo struct {
	available int
}

func (f *fakeBarberRepo) CountAvailable(_ context.Context) (int, error) {
	return f.available, nil
}

type fakeOrderRepo struct {
	avg     float64
	samples int
}

func (f *fakeOrderRepo) AverageServiceMinutes(_ context.Context, _ time.Time) (float64, int, error) {
	return f.avg, f.samples, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestSimple(t *testing.T) {
	tests := []struct {
		name    string
		ahead   int
		barbers int
		want    int
	}{
		{"no one ahead", 0, 2, 0},
		{"single barber", 3, 1, 75},
		{"two barbers floor", 3, 2, 37},
		{"no barbers falls back to one", 2, 0, 50},
		{"negative ahead clamps to zero", -1, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Simple(tt.ahead, tt.barbers))
		})
	}
}

func TestService_EstimateForNewJoin(t *testing.T) {
	svc := NewService(
		&fakeQueueRepo{counts: map[domain.QueueStatus]int{domain.StatusWaiting: 3}},
		&fakeBarberRepo{available: 2},
		&fakeOrderRepo{},
		noopLogger{},
	)

	estimate, err := svc.EstimateForNewJoin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 37, estimate)
}

func TestService_Detailed(t *testing.T) {
	t.Run("with history", func(t *testing.T) {
		svc := NewService(
			&fakeQueueRepo{counts: map[domain.QueueStatus]int{
				domain.StatusWaiting:   5,
				domain.StatusInService: 2,
			}},
			&fakeBarberRepo{available: 3},
			&fakeOrderRepo{avg: 30, samples: 12},
			noopLogger{},
		)

		est, err := svc.Detailed(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 5, est.Waiting)
		assert.Equal(t, 2, est.InService)
		assert.Equal(t, 3, est.ActiveBarbers)
		assert.Equal(t, 12, est.SampleCount)
		assert.InDelta(t, 30.0, est.AvgServiceMinutes, 0.001)

		// current = 2 * 30 * 0.5 / 3 = 10, queue = 5 * 30 / 3 = 50
		assert.InDelta(t, 10.0, est.CurrentWaitMinutes, 0.001)
		assert.InDelta(t, 50.0, est.QueueWaitMinutes, 0.001)
		assert.InDelta(t, 60.0, est.TotalMinutes, 0.001)
		assert.Equal(t, domain.WaitLevelVeryBusy, est.Recommendation.Level)
	})

	t.Run("empty history falls back to fixed duration", func(t *testing.T) {
		svc := NewService(
			&fakeQueueRepo{counts: map[domain.QueueStatus]int{domain.StatusWaiting: 1}},
			&fakeBarberRepo{available: 1},
			&fakeOrderRepo{avg: 0, samples: 0},
			noopLogger{},
		)

		est, err := svc.Detailed(context.Background())
		require.NoError(t, err)

		assert.InDelta(t, float64(domain.FixedServiceMinutes), est.AvgServiceMinutes, 0.001)
		assert.InDelta(t, 25.0, est.TotalMinutes, 0.001)
		assert.Equal(t, domain.WaitLevelModerate, est.Recommendation.Level)
	})

	t.Run("no barbers degrades to waiting times avg", func(t *testing.T) {
		svc := NewService(
			&fakeQueueRepo{counts: map[domain.QueueStatus]int{
				domain.StatusWaiting:   2,
				domain.StatusInService: 1,
			}},
			&fakeBarberRepo{available: 0},
			&fakeOrderRepo{avg: 20, samples: 4},
			noopLogger{},
		)

		est, err := svc.Detailed(context.Background())
		require.NoError(t, err)

		assert.InDelta(t, 0.0, est.CurrentWaitMinutes, 0.001)
		assert.InDelta(t, 40.0, est.QueueWaitMinutes, 0.001)
		assert.InDelta(t, 40.0, est.TotalMinutes, 0.001)
	})

	t.Run("empty shop", func(t *testing.T) {
		svc := NewService(
			&fakeQueueRepo{counts: map[domain.QueueStatus]int{}},
			&fakeBarberRepo{available: 2},
			&fakeOrderRepo{avg: 0, samples: 0},
			noopLogger{},
		)

		est, err := svc.Detailed(context.Background())
		require.NoError(t, err)

		assert.InDelta(t, 0.0, est.TotalMinutes, 0.001)
		assert.Equal(t, domain.WaitLevelLow, est.Recommendation.Level)
	})
}
