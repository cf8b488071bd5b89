package config

// ResourceLimiterConfig bounds memory, CPU, and goroutine usage. The limiter
// gates browser fallback sessions and can trigger graceful shutdown when the
// system is saturated.
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"omitempty,min=64"`
	MaxGoroutines      int     `json:"max_goroutines,omitempty" yaml:"max_goroutines,omitempty" validate:"omitempty,min=10"`
	CheckIntervalSecs  int     `json:"check_interval_secs,omitempty" yaml:"check_interval_secs,omitempty" validate:"omitempty,min=1"`
	MemoryThreshold    float64 `json:"memory_threshold,omitempty" yaml:"memory_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	GoroutineWarning   float64 `json:"goroutine_warning,omitempty" yaml:"goroutine_warning,omitempty" validate:"omitempty,gt=0,lte=1"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	CPUThreshold       float64 `json:"cpu_threshold,omitempty" yaml:"cpu_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	EnableAutoShutdown bool    `json:"enable_auto_shutdown,omitempty" yaml:"enable_auto_shutdown,omitempty"`
}

// NewDefaultResourceLimiterConfig returns default resource limiter
// configuration.
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        1024,
		MaxGoroutines:      10000,
		CheckIntervalSecs:  30,
		MemoryThreshold:    0.8,
		GoroutineWarning:   0.7,
		SystemMemThreshold: 0.5,
		CPUThreshold:       0.5,
		EnableAutoShutdown: true,
	}
}
