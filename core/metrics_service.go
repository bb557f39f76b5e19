package core

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis keys for auth event counters.
const (
	metricRegistrationsKey   = "auth:registrations_total"
	metricLoginsKey          = "auth:logins_total"
	metricLoginFailuresKey   = "auth:login_failures_total"
	metricTokenRejectionsKey = "auth:token_rejections_total"
)

// AuthMetrics holds the current counter values.
type AuthMetrics struct {
	Registrations   int64 `json:"registrations"`
	Logins          int64 `json:"logins"`
	LoginFailures   int64 `json:"login_failures"`
	TokenRejections int64 `json:"token_rejections"`
}

// MetricsService counts auth events in Redis. Recording is best-effort:
// metrics must never fail a request, so write errors are swallowed.
type MetricsService struct {
	redis RedisCounter
}

func NewMetricsService(redis RedisCounter) *MetricsService {
	return &MetricsService{redis: redis}
}

func (s *MetricsService) RecordRegistration(ctx context.Context) {
	_ = s.redis.Incr(ctx, metricRegistrationsKey).Err()
}

func (s *MetricsService) RecordLogin(ctx context.Context) {
	_ = s.redis.Incr(ctx, metricLoginsKey).Err()
}

func (s *MetricsService) RecordLoginFailure(ctx context.Context) {
	_ = s.redis.Incr(ctx, metricLoginFailuresKey).Err()
}

func (s *MetricsService) RecordTokenRejection(ctx context.Context) {
	_ = s.redis.Incr(ctx, metricTokenRejectionsKey).Err()
}

// Snapshot returns the current counter values. Missing keys read as zero.
func (s *MetricsService) Snapshot(ctx context.Context) (AuthMetrics, error) {
	var m AuthMetrics
	for _, c := range []struct {
		key  string
		dest *int64
	}{
		{metricRegistrationsKey, &m.Registrations},
		{metricLoginsKey, &m.Logins},
		{metricLoginFailuresKey, &m.LoginFailures},
		{metricTokenRejectionsKey, &m.TokenRejections},
	} {
		v, err := s.counter(ctx, c.key)
		if err != nil {
			return AuthMetrics{}, err
		}
		*c.dest = v
	}
	return m, nil
}

func (s *MetricsService) counter(ctx context.Context, key string) (int64, error) {
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
