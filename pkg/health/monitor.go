package health

import (
	"context"
	"sync"
	"time"

	appredis "github.com/bms-digital/user-service/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status represents health check status
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "HEALTHY"
	case StatusUnhealthy:
		return "UNHEALTHY"
	case StatusDisabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// CheckResult represents the result of a health check
type CheckResult struct {
	Name         string
	Status       Status
	Latency      time.Duration
	LastCheck    time.Time
	LastError    error
	CheckCount   int
	FailureCount int
}

// Checker interface for health checks
type Checker interface {
	Check(ctx context.Context) CheckResult
}

// DatabaseChecker pings the PostgreSQL connection pool
type DatabaseChecker struct {
	Name string
	DB   *gorm.DB
}

func (c *DatabaseChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      c.Name,
		LastCheck: start,
	}

	sqlDB, err := c.DB.DB()
	if err != nil {
		result.Status = StatusUnhealthy
		result.LastError = err
		result.Latency = time.Since(start)
		return result
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.LastError = err
	} else {
		result.Status = StatusHealthy
	}
	result.Latency = time.Since(start)

	return result
}

// RedisChecker pings the cache backend
type RedisChecker struct {
	Name   string
	Client appredis.Client
}

func (c *RedisChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      c.Name,
		LastCheck: start,
	}

	if c.Client == nil || !c.Client.IsEnabled() {
		result.Status = StatusDisabled
		result.Latency = time.Since(start)
		return result
	}

	if err := c.Client.Ping(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.LastError = err
	} else {
		result.Status = StatusHealthy
	}
	result.Latency = time.Since(start)

	return result
}

// Monitor runs periodic health checks against service dependencies
type Monitor struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	results  map[string]*CheckResult
	interval time.Duration
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	running  bool
}

// NewMonitor creates a new health monitor
func NewMonitor(interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		checkers: make(map[string]Checker),
		results:  make(map[string]*CheckResult),
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// RegisterDatabaseChecker registers a database health checker
func (m *Monitor) RegisterDatabaseChecker(name string, db *gorm.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkers[name] = &DatabaseChecker{Name: name, DB: db}

	m.logger.Info("Registered database health checker",
		zap.String("name", name),
	)
}

// RegisterRedisChecker registers a cache health checker
func (m *Monitor) RegisterRedisChecker(name string, client appredis.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkers[name] = &RedisChecker{Name: name, Client: client}

	m.logger.Info("Registered redis health checker",
		zap.String("name", name),
	)
}

// Start starts the health monitor
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	go m.runChecks()
}

// Stop stops the health monitor
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.running = false
	m.cancel()
}

func (m *Monitor) runChecks() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.checkAll()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.checkAll()
		}
	}
}

func (m *Monitor) checkAll() {
	m.mu.RLock()
	checkers := make(map[string]Checker)
	for name, checker := range m.checkers {
		checkers[name] = checker
	}
	m.mu.RUnlock()

	for name, checker := range checkers {
		ctx, cancel := context.WithTimeout(m.ctx, 5*time.Second)
		result := checker.Check(ctx)
		cancel()

		m.mu.Lock()
		if existing, ok := m.results[name]; ok {
			result.CheckCount = existing.CheckCount + 1
			if result.Status == StatusUnhealthy {
				result.FailureCount = existing.FailureCount + 1
			} else {
				result.FailureCount = existing.FailureCount
			}
		} else {
			result.CheckCount = 1
			if result.Status == StatusUnhealthy {
				result.FailureCount = 1
			}
		}
		m.results[name] = &result
		m.mu.Unlock()

		if result.Status == StatusUnhealthy {
			m.logger.Warn("Health check failed",
				zap.String("name", name),
				zap.String("status", result.Status.String()),
				zap.Duration("latency", result.Latency),
				zap.Error(result.LastError),
			)
		}
	}
}

// IsHealthy checks if a dependency is healthy
func (m *Monitor) IsHealthy(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if result, ok := m.results[name]; ok {
		return result.Status == StatusHealthy || result.Status == StatusDisabled
	}
	return true // Assume healthy if not tracked
}

// GetResult gets health check result for a dependency
func (m *Monitor) GetResult(name string) (*CheckResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result, exists := m.results[name]
	if !exists {
		return nil, false
	}
	resultCopy := *result
	return &resultCopy, true
}

// GetAllResults returns all health check results
func (m *Monitor) GetAllResults() map[string]*CheckResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make(map[string]*CheckResult)
	for name, result := range m.results {
		resultCopy := *result
		results[name] = &resultCopy
	}
	return results
}
