package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"riskguard-lab/internal/domain/models"
	"riskguard-lab/internal/infrastructure/cache"
)

func TestStatsRecorderMemory(t *testing.T) {
	recorder := NewStatsRecorder(nil, testLogger())
	ctx := context.Background()

	recorder.Record(ctx, models.SafetyLabelSafe, "hello")
	recorder.Record(ctx, models.SafetyLabelSafe, "world")
	recorder.Record(ctx, models.SafetyLabelUnsafe, "urgent: verify your account")

	got := recorder.Counters(ctx)
	if got[models.SafetyLabelSafe] != 2 {
		t.Errorf("SAFE = %d, want 2", got[models.SafetyLabelSafe])
	}
	if got[models.SafetyLabelSuspicious] != 0 {
		t.Errorf("SUSPICIOUS = %d, want 0", got[models.SafetyLabelSuspicious])
	}
	if got[models.SafetyLabelUnsafe] != 1 {
		t.Errorf("UNSAFE = %d, want 1", got[models.SafetyLabelUnsafe])
	}
}

func TestStatsRecorderRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewWithClient(client, "test:", testLogger())

	recorder := NewStatsRecorder(c, testLogger())
	ctx := context.Background()

	recorder.Record(ctx, models.SafetyLabelSuspicious, "some content")
	recorder.Record(ctx, models.SafetyLabelSuspicious, "other content")

	got := recorder.Counters(ctx)
	if got[models.SafetyLabelSuspicious] != 2 {
		t.Errorf("SUSPICIOUS = %d, want 2", got[models.SafetyLabelSuspicious])
	}

	// Counters live in the shared hash, not process memory
	if field := mr.HGet("test:"+cache.KeyStatsLabels, string(models.SafetyLabelSuspicious)); field != "2" {
		t.Errorf("redis hash field = %q, want %q", field, "2")
	}
}

func TestStatsRecorderFallsBackWhenRedisDies(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewWithClient(client, "test:", testLogger())

	recorder := NewStatsRecorder(c, testLogger())
	ctx := context.Background()

	mr.SetError("connection refused")
	recorder.Record(ctx, models.SafetyLabelSafe, "content")
	mr.SetError("")

	got := recorder.Counters(ctx)
	if got[models.SafetyLabelSafe] != 1 {
		t.Errorf("SAFE = %d, want 1 from the memory fallback", got[models.SafetyLabelSafe])
	}
}

func TestHashInput(t *testing.T) {
	a := hashInput("content")
	b := hashInput("content")
	if a != b {
		t.Error("digest is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
	if a == hashInput("other") {
		t.Error("distinct inputs produced the same digest")
	}
}
