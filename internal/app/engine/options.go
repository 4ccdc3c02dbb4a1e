package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	// DepthInterval controls how often book snapshots are pushed to the depth cache.
	DepthInterval time.Duration
	// TradeBufferSize bounds the trade pipeline between matching and publishing.
	TradeBufferSize int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		DepthInterval:   time.Second,
		TradeBufferSize: 1024,
	}
}
