package core

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestMetrics(t *testing.T) *MetricsService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewMetricsService(client)
}

func TestMetricsSnapshotEmpty(t *testing.T) {
	s := newTestMetrics(t)

	m, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if m != (AuthMetrics{}) {
		t.Fatalf("empty snapshot = %+v, want zeros", m)
	}
}

func TestMetricsCounters(t *testing.T) {
	s := newTestMetrics(t)
	ctx := context.Background()

	s.RecordRegistration(ctx)
	s.RecordLogin(ctx)
	s.RecordLogin(ctx)
	s.RecordLoginFailure(ctx)
	s.RecordTokenRejection(ctx)
	s.RecordTokenRejection(ctx)
	s.RecordTokenRejection(ctx)

	m, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	want := AuthMetrics{Registrations: 1, Logins: 2, LoginFailures: 1, TokenRejections: 3}
	if m != want {
		t.Fatalf("snapshot = %+v, want %+v", m, want)
	}
}
