package types

// ExecuteRequest represents a command dispatch request
type ExecuteRequest struct {
	Command   string                 `json:"command" binding:"required"`
	Params    map[string]interface{} `json:"params"`
	SessionID *string                `json:"session_id,omitempty"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string                 `json:"type"`
	Path    string                 `json:"path,omitempty"`
	WatchID string                 `json:"watch_id,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
