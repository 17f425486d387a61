package join_queue

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	barberRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-QueueService/pkg/ptr"
)

type fakeQueueRepo struct {
	waiting     int
	maxPosition int
	created     *domain.QueueEntry
}

func (f *fakeQueueRepo) Create(_ context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error) {
	created := *entry
	created.ID = 101
	f.created = &created
	return &created, nil
}

func (f *fakeQueueRepo) MaxActivePosition(_ context.Context) (int, error) {
	return f.maxPosition, nil
}

func (f *fakeQueueRepo) CountByStatus(_ context.Context, _ domain.QueueStatus) (int, error) {
	return f.waiting, nil
}

type fakeBarberRepo struct {
	barbers   map[int64]*domain.Barber
	available int
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	barber, ok := f.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	return barber, nil
}

func (f *fakeBarberRepo) CountAvailable(_ context.Context) (int, error) {
	return f.available, nil
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

func TestUseCase_Execute(t *testing.T) {
	t.Run("assigns next position and fixed estimate", func(t *testing.T) {
		queue := &fakeQueueRepo{waiting: 3, maxPosition: 3}
		uc := NewUseCase(queue, &fakeBarberRepo{available: 2}, passTxManager{}, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{CustomerName: "Alex"})
		require.NoError(t, err)

		assert.Equal(t, int64(101), resp.ID)
		assert.Equal(t, 4, resp.Position)
		assert.Equal(t, 37, resp.EstimatedWait) // floor(3 * 25 / 2)

		require.NotNil(t, queue.created)
		assert.Equal(t, domain.StatusWaiting, queue.created.Status)
	})

	t.Run("empty queue starts at position one", func(t *testing.T) {
		queue := &fakeQueueRepo{}
		uc := NewUseCase(queue, &fakeBarberRepo{available: 1}, passTxManager{}, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{CustomerName: "Alex"})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Position)
		assert.Equal(t, 0, resp.EstimatedWait)
	})

	t.Run("requested barber must exist", func(t *testing.T) {
		uc := NewUseCase(&fakeQueueRepo{}, &fakeBarberRepo{}, passTxManager{}, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			CustomerName:      "Alex",
			RequestedBarberID: ptr.Ptr(int64(99)),
		})
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewUseCase(&fakeQueueRepo{}, &fakeBarberRepo{}, passTxManager{}, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{CustomerName: "  "})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = uc.Execute(context.Background(), &Request{
			CustomerName: strings.Repeat("a", domain.MaxCustomerNameLength+1),
		})
		assert.ErrorIs(t, err, ErrNameTooLong)

		_, err = uc.Execute(context.Background(), &Request{
			CustomerName: "Alex",
			ServiceNotes: ptr.Ptr(strings.Repeat("n", domain.MaxServiceNotesLength+1)),
		})
		assert.ErrorIs(t, err, ErrNotesTooLong)
	})
}
