package api

import "github.com/maksimkurb/keen-tray/src/internal/config"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// RoutersResponse returns the configured routers.
type RoutersResponse struct {
	Routers []config.RouterConfig `json:"routers"`
}

// SetPolicyRequest assigns a policy to a client. A null policy restores the
// default policy.
type SetPolicyRequest struct {
	Policy *string `json:"policy"`
}

// HealthResponse reports whether the server is up and configured.
type HealthResponse struct {
	Healthy     bool   `json:"healthy"`
	ConfigPath  string `json:"config_path"`
	RouterCount int    `json:"router_count"`
}
