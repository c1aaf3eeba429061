package workers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/workers"
	"github.com/ammerola/reorder-engine/test/helpers"
	"github.com/ammerola/reorder-engine/test/mocks"
)

type registered struct {
	spec string
	task *asynq.Task
}

type fakeRegistrar struct {
	entries []registered
	failOn  string
}

func (f *fakeRegistrar) Register(spec string, task *asynq.Task, opts ...asynq.Option) (string, error) {
	if spec == f.failOn {
		return "", assert.AnError
	}
	f.entries = append(f.entries, registered{spec: spec, task: task})
	return uuid.NewString(), nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

func TestRegisterSchedules(t *testing.T) {
	cfg := workers.ScheduleConfig{
		RunSchedule:   "@every 1h",
		SweepSchedule: "*/15 * * * *",
		Queue:         "reorder",
		RunTimeout:    5 * time.Minute,
	}

	t.Run("registers_run_and_sweep", func(t *testing.T) {
		reg := &fakeRegistrar{}
		require.NoError(t, workers.RegisterSchedules(reg, cfg, helpers.TestLogger()))

		require.Len(t, reg.entries, 2)
		assert.Equal(t, "@every 1h", reg.entries[0].spec)
		assert.Equal(t, workers.TypeScheduledRun, reg.entries[0].task.Type())
		assert.Equal(t, "*/15 * * * *", reg.entries[1].spec)
		assert.Equal(t, workers.TypeSweepStale, reg.entries[1].task.Type())
	})

	t.Run("run_registration_failure", func(t *testing.T) {
		reg := &fakeRegistrar{failOn: "@every 1h"}
		err := workers.RegisterSchedules(reg, cfg, helpers.TestLogger())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, reg.entries)
	})

	t.Run("sweep_registration_failure", func(t *testing.T) {
		reg := &fakeRegistrar{failOn: "*/15 * * * *"}
		err := workers.RegisterSchedules(reg, cfg, helpers.TestLogger())
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestInventoryChangeEnqueuer(t *testing.T) {
	skuID := uuid.New()

	tests := []struct {
		name      string
		skuID     uuid.UUID
		clientErr error
		wantErr   bool
		wantTasks int
	}{
		{name: "enqueues_task", skuID: skuID, wantTasks: 1},
		{name: "duplicate_is_not_an_error", skuID: skuID, clientErr: asynq.ErrDuplicateTask},
		{name: "client_failure", skuID: skuID, clientErr: assert.AnError, wantErr: true},
		{name: "nil_sku_rejected", skuID: uuid.Nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeEnqueuer{err: tt.clientErr}
			e := workers.NewInventoryChangeEnqueuer(client, "reorder", time.Minute, helpers.TestLogger())

			err := e.Enqueue(context.Background(), tt.skuID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.Len(t, client.tasks, tt.wantTasks)
			if tt.wantTasks > 0 {
				var payload workers.InventoryChangePayload
				require.NoError(t, json.Unmarshal(client.tasks[0].Payload(), &payload))
				assert.Equal(t, tt.skuID, payload.SKUID)
				assert.Equal(t, workers.TypeInventoryChange, client.tasks[0].Type())
			}
		})
	}
}

func TestNewServeMux_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReorderService(ctrl)
	audit := mocks.NewMockAuditTrail(ctrl)

	reorder := workers.NewReorderProcessor(service, mocks.NewMockRunSummaryStore(ctrl), mocks.NewMockRunLocker(ctrl),
		workers.ReorderProcessorConfig{}, helpers.TestLogger()).WithClock(func() time.Time { return tick })
	cleanup := workers.NewCleanupProcessor(audit, time.Hour, helpers.TestLogger()).
		WithClock(func() time.Time { return tick })
	mux := workers.NewServeMux(reorder, cleanup)

	skuID := uuid.New()
	service.EXPECT().RunForSKU(gomock.Any(), skuID, domain.TriggerInventoryChange, tick).
		Return(nil, domain.ErrNotBelowThreshold)
	audit.EXPECT().SweepStale(gomock.Any(), time.Hour, tick).Return(0, nil)

	change, err := workers.NewInventoryChangeTask(skuID, "reorder", time.Minute)
	require.NoError(t, err)

	assert.NoError(t, mux.ProcessTask(context.Background(), change))
	assert.NoError(t, mux.ProcessTask(context.Background(), workers.NewSweepStaleTask("reorder")))
	assert.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("unknown:type", nil)))
}

func TestAsynqLogger(t *testing.T) {
	var buf bytes.Buffer
	l := workers.NewAsynqLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.Info("server ", "started")
	l.Warn("slow")

	out := buf.String()
	assert.Contains(t, out, `"msg":"server started"`)
	assert.Contains(t, out, `"component":"asynq"`)
	assert.Contains(t, out, `"level":"WARN"`)
}
