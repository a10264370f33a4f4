package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeRedis satisfies the cache client interface for checker tests.
type fakeRedis struct {
	enabled bool
	pingErr error
}

func (f *fakeRedis) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeRedis) IsEnabled() bool                { return f.enabled }
func (f *fakeRedis) Close() error                   { return nil }

func (f *fakeRedis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeRedis) Delete(ctx context.Context, keys ...string) error { return nil }

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusHealthy, "HEALTHY"},
		{StatusUnhealthy, "UNHEALTHY"},
		{StatusDisabled, "DISABLED"},
		{StatusUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestRedisChecker(t *testing.T) {
	tests := []struct {
		name     string
		client   *fakeRedis
		expected Status
	}{
		{"Disabled client", &fakeRedis{enabled: false}, StatusDisabled},
		{"Healthy client", &fakeRedis{enabled: true}, StatusHealthy},
		{"Failing client", &fakeRedis{enabled: true, pingErr: errors.New("refused")}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &RedisChecker{Name: "redis", Client: tt.client}
			result := checker.Check(context.Background())

			if result.Status != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result.Status)
			}
			if result.Name != "redis" {
				t.Errorf("Expected name redis, got %s", result.Name)
			}
		})
	}
}

func TestRedisChecker_NilClient(t *testing.T) {
	checker := &RedisChecker{Name: "redis"}
	if result := checker.Check(context.Background()); result.Status != StatusDisabled {
		t.Errorf("Expected DISABLED for nil client, got %s", result.Status)
	}
}

func TestMonitor_ResultTracking(t *testing.T) {
	monitor := NewMonitor(time.Hour, zap.NewNop())
	client := &fakeRedis{enabled: true}
	monitor.RegisterRedisChecker("redis", client)

	monitor.checkAll()

	result, ok := monitor.GetResult("redis")
	if !ok {
		t.Fatal("Expected a result after checkAll")
	}
	if result.Status != StatusHealthy || result.CheckCount != 1 || result.FailureCount != 0 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if !monitor.IsHealthy("redis") {
		t.Error("Expected healthy")
	}

	client.pingErr = errors.New("refused")
	monitor.checkAll()

	result, _ = monitor.GetResult("redis")
	if result.CheckCount != 2 || result.FailureCount != 1 {
		t.Errorf("Expected counts 2/1, got %d/%d", result.CheckCount, result.FailureCount)
	}
	if monitor.IsHealthy("redis") {
		t.Error("Expected unhealthy after failed ping")
	}
}

func TestMonitor_UntrackedAssumedHealthy(t *testing.T) {
	monitor := NewMonitor(time.Hour, zap.NewNop())
	if !monitor.IsHealthy("postgres") {
		t.Error("Untracked dependency must read as healthy")
	}
}

func TestMonitor_StartIdempotent(t *testing.T) {
	monitor := NewMonitor(time.Hour, zap.NewNop())
	monitor.RegisterRedisChecker("redis", &fakeRedis{enabled: true})

	monitor.Start()
	monitor.Start()
	defer monitor.Stop()

	deadline := time.After(time.Second)
	for {
		if result, ok := monitor.GetResult("redis"); ok && result.CheckCount >= 1 {
			if result.CheckCount > 1 {
				t.Errorf("Expected a single initial check, got %d", result.CheckCount)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("Initial check never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
