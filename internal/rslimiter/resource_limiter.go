package rslimiter

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceLimiter watches memory, CPU, and goroutine usage. It serves two
// roles: a periodic monitor that can trigger graceful shutdown, and an
// admission gate callers consult before starting browser-heavy work.
type ResourceLimiter struct {
	config           ResourceLimiterConfig
	logger           zerolog.Logger
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	memoryThreshold  int64
	goroutineWarning int
	isRunning        bool
	mu               sync.RWMutex
	shutdownCallback func()
}

// NewResourceLimiter creates a new resource limiter, applying defaults for
// zero-value config fields
func NewResourceLimiter(config ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	if config.CheckInterval == 0 {
		config.CheckInterval = 30 * time.Second
	}
	if config.MemoryThreshold == 0 {
		config.MemoryThreshold = 0.8
	}
	if config.GoroutineWarning == 0 {
		config.GoroutineWarning = 0.8
	}
	if config.SystemMemThreshold == 0 {
		config.SystemMemThreshold = 0.9
	}
	if config.CPUThreshold == 0 {
		config.CPUThreshold = 0.9
	}

	return &ResourceLimiter{
		config:           config,
		logger:           logger.With().Str("component", "ResourceLimiter").Logger(),
		ctx:              ctx,
		cancel:           cancel,
		memoryThreshold:  int64(float64(config.MaxMemoryMB) * config.MemoryThreshold),
		goroutineWarning: int(float64(config.MaxGoroutines) * config.GoroutineWarning),
	}
}

// SetShutdownCallback sets the callback invoked when auto-shutdown triggers
func (rl *ResourceLimiter) SetShutdownCallback(callback func()) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.shutdownCallback = callback
}

// Start begins the monitoring loop
func (rl *ResourceLimiter) Start() {
	rl.mu.Lock()
	if rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = true
	rl.mu.Unlock()

	rl.wg.Add(1)
	go rl.monitorResources()

	rl.logger.Info().
		Int64("max_memory_mb", rl.config.MaxMemoryMB).
		Int("max_goroutines", rl.config.MaxGoroutines).
		Dur("check_interval", rl.config.CheckInterval).
		Bool("auto_shutdown_enabled", rl.config.EnableAutoShutdown).
		Msg("Resource limiter started")
}

// Stop stops the monitoring loop
func (rl *ResourceLimiter) Stop() {
	rl.mu.Lock()
	if !rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = false
	rl.mu.Unlock()

	rl.cancel()
	rl.wg.Wait()
	rl.logger.Info().Msg("Resource limiter stopped")
}

// CheckAdmission reports whether there is headroom to start additional
// resource-heavy work such as a browser session. It checks application
// memory, goroutine count, and system memory; CPU is excluded because
// sampling it blocks.
func (rl *ResourceLimiter) CheckAdmission() error {
	if err := rl.CheckMemoryLimit(); err != nil {
		return err
	}
	if err := rl.CheckGoroutineLimit(); err != nil {
		return err
	}

	exceeded, err := rl.checkSystemMemory()
	if err != nil {
		rl.logger.Warn().Err(err).Msg("Failed to read system memory, admitting anyway")
		return nil
	}
	if exceeded {
		return fmt.Errorf("system memory usage above %.0f%% threshold", rl.config.SystemMemThreshold*100)
	}
	return nil
}

// CheckMemoryLimit checks if current application memory usage exceeds the limit
func (rl *ResourceLimiter) CheckMemoryLimit() error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	currentMB := int64(m.Alloc / 1024 / 1024)
	if currentMB > rl.config.MaxMemoryMB {
		return fmt.Errorf("memory limit exceeded: current %dMB > limit %dMB", currentMB, rl.config.MaxMemoryMB)
	}
	return nil
}

// CheckGoroutineLimit checks if the current goroutine count exceeds the limit
func (rl *ResourceLimiter) CheckGoroutineLimit() error {
	current := runtime.NumGoroutine()
	if current > rl.config.MaxGoroutines {
		return fmt.Errorf("goroutine limit exceeded: current %d > limit %d", current, rl.config.MaxGoroutines)
	}
	return nil
}

// checkSystemMemory reports whether system memory usage exceeds the threshold
func (rl *ResourceLimiter) checkSystemMemory() (bool, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return false, fmt.Errorf("failed to get system memory stats: %w", err)
	}
	return vmStat.UsedPercent/100.0 > rl.config.SystemMemThreshold, nil
}

// checkCPU reports whether CPU usage exceeds the threshold. Sampling blocks
// for one second.
func (rl *ResourceLimiter) checkCPU() (bool, error) {
	cpuPercents, err := cpu.Percent(time.Second, false)
	if err != nil {
		return false, fmt.Errorf("failed to get CPU usage: %w", err)
	}
	if len(cpuPercents) == 0 {
		return false, fmt.Errorf("no CPU usage data available")
	}
	return cpuPercents[0]/100.0 > rl.config.CPUThreshold, nil
}

// ForceGC forces garbage collection and logs the reclaimed amount
func (rl *ResourceLimiter) ForceGC() {
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)
	before := m1.Alloc / 1024 / 1024

	runtime.GC()
	runtime.GC()

	runtime.ReadMemStats(&m2)
	after := m2.Alloc / 1024 / 1024

	rl.logger.Info().
		Uint64("before_mb", before).
		Uint64("after_mb", after).
		Msg("Forced garbage collection completed")
}

func (rl *ResourceLimiter) monitorResources() {
	defer rl.wg.Done()

	ticker := time.NewTicker(rl.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			rl.checkAndLogResourceUsage()
		}
	}
}

func (rl *ResourceLimiter) checkAndLogResourceUsage() {
	usage := GetResourceUsage()

	if usage.AllocMB > rl.memoryThreshold {
		rl.logger.Warn().
			Int64("current_mb", usage.AllocMB).
			Int64("threshold_mb", rl.memoryThreshold).
			Int64("limit_mb", rl.config.MaxMemoryMB).
			Msg("Memory usage approaching limit")
		rl.ForceGC()
	}

	if usage.Goroutines > rl.goroutineWarning {
		rl.logger.Warn().
			Int("current", usage.Goroutines).
			Int("warning_threshold", rl.goroutineWarning).
			Int("limit", rl.config.MaxGoroutines).
			Msg("Goroutine count approaching limit")
	}

	if rl.config.EnableAutoShutdown {
		if exceeded, reason := rl.checkShutdownConditions(); exceeded {
			rl.logger.Error().
				Str("reason", reason).
				Int64("alloc_mb", usage.AllocMB).
				Int("goroutines", usage.Goroutines).
				Float64("system_mem_percent", usage.SystemMemUsedPercent).
				Float64("cpu_percent", usage.CPUUsagePercent).
				Msg("Resource limits exceeded, triggering graceful shutdown")
			rl.triggerGracefulShutdown()
			return
		}
	}

	rl.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Int64("gc_count", usage.GCCount).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Float64("cpu_percent", usage.CPUUsagePercent).
		Msg("Current resource usage")
}

// checkShutdownConditions evaluates all shutdown conditions in order
func (rl *ResourceLimiter) checkShutdownConditions() (bool, string) {
	if exceeded, err := rl.checkSystemMemory(); err != nil {
		rl.logger.Error().Err(err).Msg("Failed to check system memory limit")
	} else if exceeded {
		return true, "system memory threshold exceeded"
	}

	if exceeded, err := rl.checkCPU(); err != nil {
		rl.logger.Error().Err(err).Msg("Failed to check CPU limit")
	} else if exceeded {
		return true, "CPU usage threshold exceeded"
	}

	if err := rl.CheckMemoryLimit(); err != nil {
		return true, err.Error()
	}

	if err := rl.CheckGoroutineLimit(); err != nil {
		return true, err.Error()
	}

	return false, ""
}

func (rl *ResourceLimiter) triggerGracefulShutdown() {
	rl.mu.RLock()
	callback := rl.shutdownCallback
	rl.mu.RUnlock()

	if callback != nil {
		rl.logger.Info().Msg("Calling shutdown callback due to resource limits")
		callback()
	} else {
		rl.logger.Warn().Msg("No shutdown callback set, cannot trigger graceful shutdown")
	}
}
