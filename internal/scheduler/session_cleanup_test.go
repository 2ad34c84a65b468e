package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository/mocks"
	"go.uber.org/mock/gomock"
)

func TestCleanupIdleSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepository(ctrl)

	service := &SessionCleanupService{
		config: SessionCleanupConfig{
			MaxIdleDays: 30,
			Enabled:     true,
		},
		sessionRepo: mockSessionRepo,
	}

	mockSessionRepo.EXPECT().
		DeleteIdleSince(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			expected := time.Now().AddDate(0, 0, -30)
			assert.WithinDuration(t, expected, cutoff, time.Minute)
			return 3, nil
		})

	service.cleanupIdleSessions(context.Background())

	assert.Equal(t, int64(3), service.lastRemovedSessions)
	assert.False(t, service.lastRunCompletedAt.IsZero())
}

func TestCleanupIdleSessionsKeepsStatusOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepository(ctrl)
	mockSessionRepo.EXPECT().
		DeleteIdleSince(gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("banco fora do ar"))

	service := &SessionCleanupService{
		config:      SessionCleanupConfig{MaxIdleDays: 30, Enabled: true},
		sessionRepo: mockSessionRepo,
	}

	service.cleanupIdleSessions(context.Background())

	assert.Zero(t, service.lastRemovedSessions)
	assert.True(t, service.lastRunCompletedAt.IsZero())
}

func TestTriggerManualCleanupRunsWithLiveContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepository(ctrl)

	done := make(chan struct{})
	mockSessionRepo.EXPECT().
		DeleteIdleSince(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ time.Time) (int64, error) {
			defer close(done)
			// A rodada manual não pode herdar o contexto da requisição que a
			// disparou: ele é cancelado assim que a resposta é escrita.
			assert.NoError(t, ctx.Err())
			return 1, nil
		})

	service := &SessionCleanupService{
		config:      SessionCleanupConfig{MaxIdleDays: 30, Enabled: true},
		sessionRepo: mockSessionRepo,
	}

	service.TriggerManualCleanup()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("limpeza manual não executou")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["last_removed_sessions"] == int64(1)
	}, time.Second, 10*time.Millisecond)
}

func TestGetStatus(t *testing.T) {
	service := &SessionCleanupService{
		config: SessionCleanupConfig{
			CronSchedule: "0 5 * * *",
			MaxIdleDays:  30,
			Enabled:      true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["cleanup_enabled"])
	assert.Equal(t, "0 5 * * *", status["cleanup_cron"])
	assert.Equal(t, 30, status["cleanup_max_idle_days"])
}
