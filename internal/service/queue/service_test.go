package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	barberRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/barber"
	queueRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/queue"
	"github.com/m04kA/SMC-QueueService/pkg/ptr"
)

type memQueueRepo struct {
	entries map[int64]*domain.QueueEntry
	avgWait float64
}

func newMemQueueRepo(entries ...*domain.QueueEntry) *memQueueRepo {
	repo := &memQueueRepo{entries: make(map[int64]*domain.QueueEntry)}
	for _, e := range entries {
		repo.entries[e.ID] = e
	}
	return repo
}

func (m *memQueueRepo) GetByID(_ context.Context, id int64) (*domain.QueueEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, queueRepo.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *memQueueRepo) ListActive(_ context.Context) ([]*domain.QueueEntry, error) {
	var out []*domain.QueueEntry
	for pos := 1; ; pos++ {
		found := false
		for _, e := range m.entries {
			if e.IsActive() && e.Position == pos {
				copied := *e
				out = append(out, &copied)
				found = true
				break
			}
		}
		if !found {
			return out, nil
		}
	}
}

func (m *memQueueRepo) ListActiveByBarber(_ context.Context, barberID int64) ([]*domain.QueueEntry, error) {
	var out []*domain.QueueEntry
	for _, e := range m.entries {
		if e.IsActive() && e.RequestedBarberID != nil && *e.RequestedBarberID == barberID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memQueueRepo) FindActiveByPhone(_ context.Context, phone string) (*domain.QueueEntry, error) {
	var best *domain.QueueEntry
	for _, e := range m.entries {
		if !e.IsActive() || e.CustomerPhone == nil || *e.CustomerPhone != phone {
			continue
		}
		if best == nil || e.Position < best.Position {
			best = e
		}
	}
	if best == nil {
		return nil, queueRepo.ErrEntryNotFound
	}
	copied := *best
	return &copied, nil
}

func (m *memQueueRepo) CountByStatus(_ context.Context, status domain.QueueStatus) (int, error) {
	count := 0
	for _, e := range m.entries {
		if e.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *memQueueRepo) CountWaitingAhead(_ context.Context, position int) (int, error) {
	count := 0
	for _, e := range m.entries {
		if e.Status == domain.StatusWaiting && e.Position < position {
			count++
		}
	}
	return count, nil
}

func (m *memQueueRepo) UpdateStatus(_ context.Context, id int64, status domain.QueueStatus) error {
	entry, ok := m.entries[id]
	if !ok {
		return queueRepo.ErrEntryNotFound
	}
	entry.Status = status
	return nil
}

func (m *memQueueRepo) SetCalled(_ context.Context, id int64, calledAt time.Time) error {
	entry, ok := m.entries[id]
	if !ok {
		return queueRepo.ErrEntryNotFound
	}
	entry.Status = domain.StatusCalled
	entry.CalledTime = &calledAt
	return nil
}

func (m *memQueueRepo) SetCompleted(_ context.Context, id int64, completedAt time.Time) error {
	entry, ok := m.entries[id]
	if !ok {
		return queueRepo.ErrEntryNotFound
	}
	entry.Status = domain.StatusCompleted
	entry.CompletedTime = &completedAt
	return nil
}

func (m *memQueueRepo) ShiftPositionsAfter(_ context.Context, position int) error {
	for _, e := range m.entries {
		if e.IsActive() && e.Position > position {
			e.Position--
		}
	}
	return nil
}

func (m *memQueueRepo) AverageCalledWaitMinutes(_ context.Context, _ time.Time) (float64, error) {
	return m.avgWait, nil
}

type memBarberRepo struct {
	barbers   map[int64]*domain.Barber
	available int
	clockedIn bool
	onBreak   bool
}

func (m *memBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	barber, ok := m.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	return barber, nil
}

func (m *memBarberRepo) CountAvailable(_ context.Context) (int, error) {
	return m.available, nil
}

func (m *memBarberRepo) HasOpenTimeClock(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return m.clockedIn, nil
}

func (m *memBarberRepo) HasOpenBreak(_ context.Context, _ int64) (bool, error) {
	return m.onBreak, nil
}

type memOrderRepo struct {
	inProgress int
}

func (m *memOrderRepo) CountInProgressByBarber(_ context.Context, _ int64) (int, error) {
	return m.inProgress, nil
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

func waitingEntry(id int64, position int, name string) *domain.QueueEntry {
	return &domain.QueueEntry{
		ID:           id,
		CustomerName: name,
		Position:     position,
		Status:       domain.StatusWaiting,
		CheckInTime:  time.Now().Add(-10 * time.Minute),
	}
}

func newTestService(qr *memQueueRepo, br *memBarberRepo, or *memOrderRepo) *Service {
	svc := NewService(qr, br, or, passTxManager{}, noopLogger{})
	svc.timeProvider = fixedTimeProvider{now: time.Now()}
	return svc
}

func TestService_Call(t *testing.T) {
	t.Run("from waiting", func(t *testing.T) {
		repo := newMemQueueRepo(waitingEntry(1, 1, "Alex"))
		svc := newTestService(repo, &memBarberRepo{}, &memOrderRepo{})

		resp, err := svc.Call(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "called", resp.Status)
		assert.Equal(t, domain.StatusCalled, repo.entries[1].Status)
		assert.NotNil(t, repo.entries[1].CalledTime)
	})

	t.Run("already called", func(t *testing.T) {
		entry := waitingEntry(1, 1, "Alex")
		entry.Status = domain.StatusCalled
		svc := newTestService(newMemQueueRepo(entry), &memBarberRepo{}, &memOrderRepo{})

		_, err := svc.Call(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newMemQueueRepo(), &memBarberRepo{}, &memOrderRepo{})

		_, err := svc.Call(context.Background(), 42)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestService_StartService(t *testing.T) {
	barbers := &memBarberRepo{barbers: map[int64]*domain.Barber{
		7: {ID: 7, Name: "Mike", IsActive: true, IsAvailable: true},
	}}

	t.Run("from called", func(t *testing.T) {
		entry := waitingEntry(1, 1, "Alex")
		entry.Status = domain.StatusCalled
		repo := newMemQueueRepo(entry)
		svc := newTestService(repo, barbers, &memOrderRepo{})

		resp, err := svc.StartService(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, "Alex", resp.CustomerName)
		assert.Equal(t, "Mike", resp.BarberName)
		assert.Equal(t, domain.StatusInService, repo.entries[1].Status)
	})

	t.Run("unknown barber", func(t *testing.T) {
		svc := newTestService(newMemQueueRepo(waitingEntry(1, 1, "Alex")), barbers, &memOrderRepo{})

		_, err := svc.StartService(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("already completed", func(t *testing.T) {
		entry := waitingEntry(1, 1, "Alex")
		entry.Status = domain.StatusCompleted
		svc := newTestService(newMemQueueRepo(entry), barbers, &memOrderRepo{})

		_, err := svc.StartService(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_Complete(t *testing.T) {
	t.Run("from in_service", func(t *testing.T) {
		entry := waitingEntry(1, 1, "Alex")
		entry.Status = domain.StatusInService
		repo := newMemQueueRepo(entry)
		svc := newTestService(repo, &memBarberRepo{}, &memOrderRepo{})

		require.NoError(t, svc.Complete(context.Background(), 1))
		assert.Equal(t, domain.StatusCompleted, repo.entries[1].Status)
		assert.NotNil(t, repo.entries[1].CompletedTime)
	})

	t.Run("from waiting", func(t *testing.T) {
		svc := newTestService(newMemQueueRepo(waitingEntry(1, 1, "Alex")), &memBarberRepo{}, &memOrderRepo{})

		err := svc.Complete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_Remove_RenumbersTail(t *testing.T) {
	repo := newMemQueueRepo(
		waitingEntry(1, 1, "A"),
		waitingEntry(2, 2, "B"),
		waitingEntry(3, 3, "C"),
		waitingEntry(4, 4, "D"),
	)
	svc := newTestService(repo, &memBarberRepo{}, &memOrderRepo{})

	require.NoError(t, svc.Remove(context.Background(), 2))

	assert.Equal(t, domain.StatusLeft, repo.entries[2].Status)
	assert.Equal(t, 1, repo.entries[1].Position)
	assert.Equal(t, 2, repo.entries[3].Position)
	assert.Equal(t, 3, repo.entries[4].Position)

	t.Run("in_service entry cannot be removed", func(t *testing.T) {
		entry := waitingEntry(5, 3, "E")
		entry.Status = domain.StatusInService
		repo.entries[5] = entry

		err := svc.Remove(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_EntryStatus(t *testing.T) {
	repo := newMemQueueRepo(
		waitingEntry(1, 1, "A"),
		waitingEntry(2, 2, "B"),
		waitingEntry(3, 3, "C"),
	)
	svc := newTestService(repo, &memBarberRepo{available: 2}, &memOrderRepo{})

	resp, err := svc.EntryStatus(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Position)
	assert.Equal(t, 2, resp.PeopleAhead)
	assert.Equal(t, 25, resp.EstimatedWaitMinutes) // floor(2 * 25 / 2)
	assert.Equal(t, 10, resp.WaitTimeSoFar)
}

func TestService_LookupByPhone(t *testing.T) {
	t.Run("active entry found", func(t *testing.T) {
		entry := waitingEntry(1, 1, "Alex")
		entry.CustomerPhone = ptr.Ptr("555-0101")
		svc := newTestService(newMemQueueRepo(entry), &memBarberRepo{available: 1}, &memOrderRepo{})

		resp, err := svc.LookupByPhone(context.Background(), "555-0101")
		require.NoError(t, err)
		require.True(t, resp.Found)
		assert.Equal(t, int64(1), *resp.ID)
		assert.Equal(t, "waiting", *resp.Status)
	})

	t.Run("terminal entry is ignored", func(t *testing.T) {
		entry := waitingEntry(1, 1, "Alex")
		entry.CustomerPhone = ptr.Ptr("555-0101")
		entry.Status = domain.StatusCompleted
		svc := newTestService(newMemQueueRepo(entry), &memBarberRepo{}, &memOrderRepo{})

		resp, err := svc.LookupByPhone(context.Background(), "555-0101")
		require.NoError(t, err)
		assert.False(t, resp.Found)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("empty phone", func(t *testing.T) {
		svc := newTestService(newMemQueueRepo(), &memBarberRepo{}, &memOrderRepo{})

		_, err := svc.LookupByPhone(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Stats(t *testing.T) {
	entries := []*domain.QueueEntry{
		waitingEntry(1, 1, "A"),
		waitingEntry(2, 2, "B"),
	}
	called := waitingEntry(3, 3, "C")
	called.Status = domain.StatusCalled
	inService := waitingEntry(4, 0, "D")
	inService.Status = domain.StatusInService

	repo := newMemQueueRepo(append(entries, called, inService)...)
	repo.avgWait = 17.26
	svc := newTestService(repo, &memBarberRepo{available: 2}, &memOrderRepo{})

	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Waiting)
	assert.Equal(t, 1, resp.Called)
	assert.Equal(t, 1, resp.InService)
	assert.Equal(t, 2, resp.ActiveBarbers)
	assert.InDelta(t, 17.3, resp.AverageWaitMinutes, 0.001)
	assert.Equal(t, 25, resp.EstimatedWaitNew) // floor(2 * 25 / 2)
}

func TestService_BarberStatus(t *testing.T) {
	barbers := &memBarberRepo{
		barbers: map[int64]*domain.Barber{
			7: {ID: 7, Name: "Mike", IsActive: true, IsAvailable: true},
		},
		clockedIn: true,
	}

	t.Run("busy overrides break", func(t *testing.T) {
		barbers.onBreak = true
		svc := newTestService(newMemQueueRepo(), barbers, &memOrderRepo{inProgress: 1})

		resp, err := svc.BarberStatus(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "busy", resp.Status)
		assert.Equal(t, 1, resp.InProgressOrders)
	})

	t.Run("on break", func(t *testing.T) {
		barbers.onBreak = true
		svc := newTestService(newMemQueueRepo(), barbers, &memOrderRepo{})

		resp, err := svc.BarberStatus(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "on_break", resp.Status)
	})

	t.Run("not clocked in", func(t *testing.T) {
		notIn := &memBarberRepo{
			barbers:   barbers.barbers,
			clockedIn: false,
		}
		svc := newTestService(newMemQueueRepo(), notIn, &memOrderRepo{})

		resp, err := svc.BarberStatus(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "clocked_out", resp.Status)
	})
}
