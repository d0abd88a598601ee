package dtos

// KPISet carries the dashboard counters for a date window.
type KPISet struct {
	TotalPool           int `json:"total_pool"`
	TotalSweeperBacklog int `json:"total_sweeper_backlog"`
	TotalDivergence     int `json:"total_divergence"`
	ToBeAdded           int `json:"to_be_added"`
	AlreadyInPool       int `json:"already_in_pool"`
	NonRouted           int `json:"non_routed"`
	PoolOnly            int `json:"pool_only"`
	FitForRouting       int `json:"fit_for_routing"`

	// Share of divergence rows already in the pool, 0 when there is no
	// divergence at all.
	AlreadyInPoolPct float64 `json:"already_in_pool_pct"`
}

// GroupCount is one bucket of a top-N grouping.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Window         *DateWindow  `json:"window,omitempty"`
	KPIs           KPISet       `json:"kpis"`
	TopCities      []GroupCount `json:"top_cities,omitempty"`
	Dispositions   []GroupCount `json:"dispositions,omitempty"`
	Degraded       []string     `json:"degraded_sources,omitempty"`
	AwaitingFilter bool         `json:"awaiting_filter,omitempty"`
}

// FilterOptions lists the distinct values offered by the dashboard filters.
type FilterOptions struct {
	TrackingStatuses []string `json:"tracking_statuses"`
	DestinationHubs  []string `json:"destination_hubs"`
	Cities           []string `json:"cities"`
}

// ImportSummary reports the outcome of one upload batch.
type ImportSummary struct {
	BatchID     string   `json:"batch_id"`
	Kind        string   `json:"kind"`
	RowsRead    int      `json:"rows_read"`
	RowsSaved   int      `json:"rows_saved"`
	RowsSkipped int      `json:"rows_skipped"`
	RowErrors   []string `json:"row_errors,omitempty"`
}
