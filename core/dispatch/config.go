package dispatch

import (
	"fmt"
	"time"
)

// Config holds the dispatcher's retry and response-simulation parameters.
type Config struct {
	// RetryDelayMS is the pause after a failed allocation before the next
	// dequeue, avoiding a tight retry loop.
	RetryDelayMS int `json:"retry_delay_ms"`
	// UnscoredDelayMS is the pause after requeueing an unscored event.
	UnscoredDelayMS int `json:"unscored_delay_ms"`
	// ResponseStepMS is the simulated response duration per severity point.
	ResponseStepMS int `json:"response_step_ms"`
	// ResponseCapMS caps the simulated response duration.
	ResponseCapMS int `json:"response_cap_ms"`
	// ResponseJitterMS bounds the random addition to the response duration.
	ResponseJitterMS int `json:"response_jitter_ms"`
	// WarnAfterRetries logs a warning once an event has been requeued this
	// many times; the event is never dropped.
	WarnAfterRetries int `json:"warn_after_retries"`
}

// SetDefaults applies the default timings.
func (c *Config) SetDefaults() {
	if c.RetryDelayMS == 0 {
		c.RetryDelayMS = 500
	}
	if c.UnscoredDelayMS == 0 {
		c.UnscoredDelayMS = 200
	}
	if c.ResponseStepMS == 0 {
		c.ResponseStepMS = 200
	}
	if c.ResponseCapMS == 0 {
		c.ResponseCapMS = 20_000
	}
	if c.ResponseJitterMS == 0 {
		c.ResponseJitterMS = 2_000
	}
	if c.WarnAfterRetries == 0 {
		c.WarnAfterRetries = 10
	}
}

// Validate rejects negative timings.
func (c Config) Validate() error {
	for name, v := range map[string]int{
		"retry_delay_ms":     c.RetryDelayMS,
		"unscored_delay_ms":  c.UnscoredDelayMS,
		"response_step_ms":   c.ResponseStepMS,
		"response_cap_ms":    c.ResponseCapMS,
		"response_jitter_ms": c.ResponseJitterMS,
	} {
		if v < 0 {
			return fmt.Errorf("dispatch: %s must be >= 0", name)
		}
	}
	return nil
}

func (c Config) retryDelay() time.Duration     { return time.Duration(c.RetryDelayMS) * time.Millisecond }
func (c Config) unscoredDelay() time.Duration  { return time.Duration(c.UnscoredDelayMS) * time.Millisecond }
func (c Config) responseStep() time.Duration   { return time.Duration(c.ResponseStepMS) * time.Millisecond }
func (c Config) responseCap() time.Duration    { return time.Duration(c.ResponseCapMS) * time.Millisecond }
func (c Config) responseJitter() time.Duration { return time.Duration(c.ResponseJitterMS) * time.Millisecond }
