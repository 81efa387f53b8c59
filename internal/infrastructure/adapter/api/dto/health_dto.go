package dto

// HealthResponse represents the API response of the health check
type HealthResponse struct {
	Status   string          `json:"status"`
	Database string          `json:"database"`
	Pool     *PoolStatistics `json:"pool,omitempty"`
}

// PoolStatistics is the connection pool part of the health check
type PoolStatistics struct {
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	IdleConnections    int   `json:"idle_connections"`
	MaxOpenConnections int   `json:"max_open_connections"`
	WaitCount          int64 `json:"wait_count"`
}
