package models

import "time"

// SystemMetrics is a lightweight aggregate for the API's metrics summary,
// distinct from the full Prometheus exposition.
type SystemMetrics struct {
	SyncTotal                uint64    `json:"syncTotal"`
	SyncErrors               uint64    `json:"syncErrors"`
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	AverageFetchDurationMs   float64   `json:"averageFetchDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
