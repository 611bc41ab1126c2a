package models

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// OutcomeTally counts traversal outcomes within the current pass.
type OutcomeTally struct {
	ReachedTarget int `json:"reached_target"`
	CycleDetected int `json:"cycle_detected"`
	DeadEnd       int `json:"dead_end"`
}

// StatusResponse is the body of GET /api/v1/status: a snapshot of the
// walk in progress. It is read-only observability; nothing in it feeds
// back into traversal.
type StatusResponse struct {
	Pass        int          `json:"pass"`
	SeedsTotal  int          `json:"seeds_total"`
	SeedsDone   int          `json:"seeds_done"`
	CurrentSeed string       `json:"current_seed,omitempty"`
	CurrentPage string       `json:"current_page,omitempty"`
	Hops        int          `json:"hops"`
	Outcomes    OutcomeTally `json:"outcomes"`
}
