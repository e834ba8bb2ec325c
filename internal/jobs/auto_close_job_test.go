package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCloser struct {
	mock.Mock
}

func (m *mockCloser) Handle(ctx context.Context, cmd commands.CloseDeliveredOrdersCommand) ([]int64, error) {
	args := m.Called(ctx, cmd)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAutoCloseJob_Run(t *testing.T) {
	t.Run("passes idle window and batch size", func(t *testing.T) {
		closer := &mockCloser{}
		closer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CloseDeliveredOrdersCommand) bool {
			return cmd.IdleFor() == 2*time.Hour && cmd.BatchSize() == 10
		})).Return([]int64{3, 4}, nil).Once()
		job := NewAutoCloseJob(closer, AutoCloseConfig{IdleFor: 2 * time.Hour, BatchSize: 10}, discard())

		closed := job.Run(context.Background())

		assert.Equal(t, []int64{3, 4}, closed)
		closer.AssertExpectations(t)
	})

	t.Run("defaults", func(t *testing.T) {
		closer := &mockCloser{}
		closer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CloseDeliveredOrdersCommand) bool {
			return cmd.IdleFor() == DefaultAutoCloseIdle && cmd.BatchSize() == DefaultAutoCloseBatch
		})).Return(nil, nil).Once()
		job := NewAutoCloseJob(closer, AutoCloseConfig{}, discard())

		assert.Empty(t, job.Run(context.Background()))
		assert.Equal(t, DefaultAutoCloseSchedule, job.cfg.Schedule)
		closer.AssertExpectations(t)
	})

	t.Run("keeps what was closed before a failure", func(t *testing.T) {
		closer := &mockCloser{}
		closer.On("Handle", mock.Anything, mock.Anything).Return([]int64{3}, errors.New("db down")).Once()
		job := NewAutoCloseJob(closer, AutoCloseConfig{}, discard())

		assert.Equal(t, []int64{3}, job.Run(context.Background()))
	})
}

func TestAutoCloseJob_StartStop(t *testing.T) {
	t.Run("bad schedule", func(t *testing.T) {
		job := NewAutoCloseJob(&mockCloser{}, AutoCloseConfig{Schedule: "every now and then"}, discard())
		require.Error(t, job.Start())
	})

	t.Run("runs on schedule", func(t *testing.T) {
		closer := &mockCloser{}
		ran := make(chan struct{}, 1)
		closer.On("Handle", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}).Return(nil, nil)
		manager := NewJobManager(closer, AutoCloseConfig{Schedule: "@every 1s"}, discard())

		require.NoError(t, manager.StartAll())
		select {
		case <-ran:
		case <-time.After(3 * time.Second):
			t.Fatal("auto-close job did not run")
		}
		manager.StopAll()
	})
}
