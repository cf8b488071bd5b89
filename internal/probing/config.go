package probing

// Config controls the direct HTTP probe of the inspection target.
type Config struct {
	Enabled         bool
	Method          string
	TimeoutSecs     int
	Retries         int
	Threads         int
	FollowRedirects bool
	TechDetect      bool
	ExtractBody     bool
	RateLimit       int
	CustomHeaders   map[string]string
}

// DefaultConfig returns probe defaults tuned for a single-target run.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Method:          "GET",
		TimeoutSecs:     10,
		Retries:         1,
		Threads:         1,
		FollowRedirects: true,
		TechDetect:      true,
		ExtractBody:     false,
		RateLimit:       0,
	}
}
