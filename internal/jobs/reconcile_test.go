package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/reports"
)

type fakeReconciler struct {
	calls  atomic.Int32
	report *reports.DriftReport
	err    error
}

func (f *fakeReconciler) RunAll(context.Context) (*reports.DriftReport, error) {
	f.calls.Add(1)
	return f.report, f.err
}

func TestRunOnce_WarnsOnDrift(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &fakeReconciler{report: &reports.DriftReport{Salons: []reports.SalonResult{
		{SalonID: uuid.New(), Drifted: true},
		{SalonID: uuid.New()},
	}}}

	NewReconcileScheduler(rec, logger.FromZap(zap.New(core))).RunOnce()

	assert.Equal(t, int32(1), rec.calls.Load())
	assert.Equal(t, 1, logs.FilterMessage("reconcile found drift").Len())
}

func TestRunOnce_LogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &fakeReconciler{err: errors.New("db down")}

	NewReconcileScheduler(rec, logger.FromZap(zap.New(core))).RunOnce()

	assert.Equal(t, 1, logs.FilterMessage("reconcile run failed").Len())
}

func TestStart_RejectsBadSpec(t *testing.T) {
	s := NewReconcileScheduler(&fakeReconciler{}, nil)
	assert.Error(t, s.Start("every day"))
}
