package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(context.Context) error { return nil }

func down(context.Context) error { return errors.New("connection refused") }

func TestCheckBasic(t *testing.T) {
	healthy := NewHealthChecker(PingFunc(ok), nil, nil).CheckBasic(context.Background())
	assert.Equal(t, StatusHealthy, healthy.Status)
	assert.Equal(t, StatusHealthy, healthy.Database.Status)

	broken := NewHealthChecker(PingFunc(down), nil, nil).CheckBasic(context.Background())
	assert.Equal(t, StatusUnhealthy, broken.Status)
	assert.Equal(t, "connection refused", broken.Database.Error)
}

func TestCheckDetailed(t *testing.T) {
	t.Run("optional components disabled", func(t *testing.T) {
		s := NewHealthChecker(PingFunc(ok), nil, nil).CheckDetailed(context.Background())
		assert.Equal(t, StatusHealthy, s.Status)
		assert.Equal(t, StatusDisabled, s.Cache.Status)
		assert.Equal(t, StatusDisabled, s.Storage.Status)
		assert.Positive(t, s.System.Goroutines)
	})

	t.Run("storage down degrades", func(t *testing.T) {
		s := NewHealthChecker(PingFunc(ok), PingFunc(ok), PingFunc(down)).CheckDetailed(context.Background())
		assert.Equal(t, "degraded", s.Status)
		assert.Equal(t, StatusHealthy, s.Cache.Status)
		assert.Equal(t, StatusUnhealthy, s.Storage.Status)
	})

	t.Run("database down is unhealthy", func(t *testing.T) {
		s := NewHealthChecker(PingFunc(down), PingFunc(ok), PingFunc(ok)).CheckDetailed(context.Background())
		assert.Equal(t, StatusUnhealthy, s.Status)
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "512.0 MB", formatBytes(512<<20))
	assert.Equal(t, "2.0 GB", formatBytes(2<<30))
	assert.Equal(t, "5m", formatUptime(300))
	assert.Equal(t, "2h 30m", formatUptime(9000))
	assert.Equal(t, "1d 1h", formatUptime(90000))
}
