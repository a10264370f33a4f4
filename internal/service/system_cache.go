package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bms-digital/user-service/internal/dto"
	"github.com/bms-digital/user-service/internal/model"
	"go.uber.org/zap"
)

// DefaultRefreshInterval applies until the parameter table says otherwise.
const DefaultRefreshInterval = 10 * time.Minute

// SystemCache is the in-memory mirror of the system_parameters table. The
// snapshot is replaced as a whole under the lock after the query completes;
// readers always observe a complete old or new snapshot, never a partial one.
type SystemCache struct {
	params ParameterSource
	logger *zap.Logger

	mu          sync.RWMutex
	flags       dto.SystemFlags
	lastUpdated time.Time
}

func NewSystemCache(params ParameterSource, logger *zap.Logger) *SystemCache {
	return &SystemCache{
		params: params,
		logger: logger,
		flags: dto.SystemFlags{
			AutoCacheRefreshRequired: true,
			AutoCacheRefreshInterval: DefaultRefreshInterval,
		},
	}
}

// Flags returns the current snapshot without touching storage.
func (c *SystemCache) Flags() dto.SystemFlags {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags
}

// LastUpdated reports when the snapshot was last refreshed successfully.
func (c *SystemCache) LastUpdated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

// Refresh reads all parameter rows in one query and installs a new snapshot.
// On storage failure the previous snapshot is kept intact and the error is
// returned; unknown keys are logged and ignored.
func (c *SystemCache) Refresh(ctx context.Context) error {
	params, err := c.params.GetAll(ctx)
	if err != nil {
		c.logger.Error("System cache refresh failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	// Build the full snapshot off-lock, starting from the current values so
	// a row deleted from the table does not silently reset its flag.
	next := c.Flags()
	for _, param := range params {
		switch param.ParamID {
		case model.ParamPasswordHashingRequired:
			next.PasswordHashingRequired = param.ParamValue == "Y"
		case model.ParamSendPasswordInResp:
			next.SendPasswordInResp = param.ParamValue == "Y"
		case model.ParamCreateUserHistory:
			next.CreateUserHistory = param.ParamValue == "Y"
		case model.ParamAutoCacheRefreshRequired:
			next.AutoCacheRefreshRequired = param.ParamValue == "Y"
		case model.ParamAutoCacheRefreshInterval:
			ms, err := strconv.Atoi(param.ParamValue)
			if err != nil || ms <= 0 {
				c.logger.Warn("Ignoring unparseable refresh interval",
					zap.String("param_value", param.ParamValue),
				)
				continue
			}
			next.AutoCacheRefreshInterval = time.Duration(ms) * time.Millisecond
		default:
			c.logger.Warn("Unexpected system parameter", zap.String("param_id", param.ParamID))
		}
	}

	c.mu.Lock()
	c.flags = next
	c.lastUpdated = time.Now()
	c.mu.Unlock()

	c.logger.Info("System cache refreshed",
		zap.Bool("password_hashing_required", next.PasswordHashingRequired),
		zap.Bool("send_password_in_resp", next.SendPasswordInResp),
		zap.Bool("create_user_history", next.CreateUserHistory),
		zap.Bool("auto_refresh_required", next.AutoCacheRefreshRequired),
		zap.Duration("auto_refresh_interval", next.AutoCacheRefreshInterval),
	)

	return nil
}

// Start runs the background refresh loop until ctx is cancelled. The interval
// follows the table value and is re-armed after every tick, so an operator
// change takes effect on the next cycle without a restart.
func (c *SystemCache) Start(ctx context.Context) {
	go func() {
		for {
			interval := c.Flags().AutoCacheRefreshInterval
			if interval <= 0 {
				interval = DefaultRefreshInterval
			}

			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				c.logger.Info("System cache refresh loop stopped")
				return
			case <-timer.C:
			}

			if !c.Flags().AutoCacheRefreshRequired {
				continue
			}

			if err := c.Refresh(ctx); err != nil {
				// Logged inside Refresh; the loop keeps running on the old snapshot
				continue
			}
		}
	}()
}
