//go:build unit

package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"car-rental-platform/internal/jobs"
	"car-rental-platform/internal/pkg/config"
	commandsmock "car-rental-platform/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRunner(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(m *commandsmock.MockMaintenanceCommands)
		run   func(r *jobs.Runner)
	}{
		{
			name: "success: completes finished reservations",
			setup: func(m *commandsmock.MockMaintenanceCommands) {
				m.EXPECT().CompleteFinishedReservations(gomock.Any()).Return(int64(3), nil)
			},
			run: func(r *jobs.Runner) { r.CompleteFinishedReservations() },
		},
		{
			name: "success: purges idempotency keys",
			setup: func(m *commandsmock.MockMaintenanceCommands) {
				m.EXPECT().PurgeExpiredIdempotencyKeys(gomock.Any()).Return(int64(0), nil)
			},
			run: func(r *jobs.Runner) { r.PurgeExpiredIdempotencyKeys() },
		},
		{
			name: "error: failure is logged, not propagated",
			setup: func(m *commandsmock.MockMaintenanceCommands) {
				m.EXPECT().CompleteFinishedReservations(gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			run: func(r *jobs.Runner) { r.CompleteFinishedReservations() },
		},
		{
			name: "error: panic is recovered",
			setup: func(m *commandsmock.MockMaintenanceCommands) {
				m.EXPECT().PurgeExpiredIdempotencyKeys(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
					panic("boom")
				})
			},
			run: func(r *jobs.Runner) { r.PurgeExpiredIdempotencyKeys() },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := commandsmock.NewMockMaintenanceCommands(ctrl)
			tc.setup(m)

			assert.NotPanics(t, func() { tc.run(jobs.NewRunner(m)) })
		})
	}
}

func TestScheduler(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := jobs.NewRunner(commandsmock.NewMockMaintenanceCommands(ctrl))

	t.Run("success: registers both jobs", func(t *testing.T) {
		s, err := jobs.NewScheduler(runner, config.SchedulerConfig{
			CompleteReservations: "0 5 0 * * *",
			PurgeIdempotencyKeys: "0 0 * * * *",
		}, time.UTC)

		require.NoError(t, err)
		assert.Equal(t, 2, s.Entries())

		s.Start()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, s.Stop(ctx))
	})

	t.Run("error: five-field spec is rejected", func(t *testing.T) {
		_, err := jobs.NewScheduler(runner, config.SchedulerConfig{
			CompleteReservations: "5 0 * * *",
			PurgeIdempotencyKeys: "0 0 * * * *",
		}, nil)

		assert.Error(t, err)
	})
}
