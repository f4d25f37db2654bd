package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/pkg/jobs"
)

func TestAuditServiceWritesToLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	audit := NewAuditService(NewLogAuditSink(zap.New(core)), jobs.QueueConfig{Workers: 1})
	audit.Start(context.Background())

	audit.Record(&models.Principal{Username: "principal"}, models.AuditActionLogin, "auth", "principal", []byte(`{"status":"success"}`))
	audit.Stop()

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, models.AuditActionLogin, fields["action"])
	assert.Equal(t, "principal", fields["actor"])
	assert.Equal(t, "principal", fields["resource_id"])
}

func TestAuditServiceDropsWhenStopped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := &recordingSink{}
	audit := NewAuditService(sink, jobs.QueueConfig{Logger: zap.New(core)})

	audit.Record(nil, models.AuditActionSignup, "activity", "Chess Club", nil)

	assert.Empty(t, sink.entries)
	assert.Equal(t, 1, logs.FilterMessage("audit entry dropped").Len())

	var nilAudit *AuditService
	nilAudit.Record(nil, models.AuditActionSignup, "activity", "Chess Club", nil)
}
