package models

// Requests for market HTTP endpoints. Defined in domain for consistency and reuse.

type StreamRequest struct {
	// Interval is the push cadence in seconds. Zero falls back to the
	// server-configured stream interval.
	Interval int `query:"interval" json:"interval" validate:"gte=0,lte=60"`
}
