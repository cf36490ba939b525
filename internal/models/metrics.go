package models

import "time"

// MetricsSnapshot summarises process counters for the health endpoint.
type MetricsSnapshot struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	AlarmsComputed           uint64    `json:"alarmsComputed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
