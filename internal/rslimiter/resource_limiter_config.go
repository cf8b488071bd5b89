package rslimiter

import "time"

// ResourceLimiterConfig holds configuration for the resource limiter
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64         // Maximum application memory in MB
	MaxGoroutines      int           // Maximum number of goroutines
	CheckInterval      time.Duration // How often to check resource usage
	MemoryThreshold    float64       // Fraction of max memory that triggers a warning
	GoroutineWarning   float64       // Fraction of max goroutines that triggers a warning
	SystemMemThreshold float64       // Fraction of system memory that triggers auto-shutdown
	CPUThreshold       float64       // Fraction of CPU usage that triggers auto-shutdown
	EnableAutoShutdown bool          // Enable auto-shutdown when thresholds are exceeded
}

// DefaultResourceLimiterConfig returns default configuration
func DefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        1024,
		MaxGoroutines:      10000,
		CheckInterval:      30 * time.Second,
		MemoryThreshold:    0.8,
		GoroutineWarning:   0.7,
		SystemMemThreshold: 0.5,
		CPUThreshold:       0.5,
		EnableAutoShutdown: true,
	}
}
