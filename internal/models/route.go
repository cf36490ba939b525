package models

import "time"

// Traffic levels reported by route estimates.
const (
	TrafficLow    = "low"
	TrafficMedium = "medium"
	TrafficHigh   = "high"
)

// TrafficInfo is the congestion surcharge applied on top of a route.
type TrafficInfo struct {
	Level          string `json:"level"`
	AdditionalTime int    `json:"additionalTime"`
}

// RouteStep is one leg of a route.
type RouteStep struct {
	Instruction string  `json:"instruction"`
	Mode        string  `json:"mode"`
	Duration    int     `json:"duration"`
	Distance    float64 `json:"distance"`
}

// RouteRequest asks for travel between two addresses arriving by ArriveBy.
type RouteRequest struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Mode        TransportType `json:"mode"`
	ArriveBy    time.Time     `json:"arriveBy"`
}

// RouteResult is an ephemeral travel estimate; Distance in km, Duration in minutes.
type RouteResult struct {
	Origin       string       `json:"origin,omitempty"`
	Destination  string       `json:"destination,omitempty"`
	Distance     float64      `json:"distance"`
	Duration     int          `json:"duration"`
	Mode         string       `json:"mode"`
	Steps        []RouteStep  `json:"steps"`
	TrafficInfo  *TrafficInfo `json:"trafficInfo,omitempty"`
	IsRealRoute  bool         `json:"isRealRoute"`
	CalculatedAt time.Time    `json:"calculatedAt"`
}
