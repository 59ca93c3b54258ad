package navigator

import (
	"context"
	"os"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// NavOps handles session navigation commands.
type NavOps struct {
	*NavigatorOps
}

// GetTools returns navigation tool definitions
func (n *NavOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "cd",
			Name:        "Change Directory",
			Description: "Change the session's current directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Target directory (absolute, relative, or '..')", Required: true},
				{Name: "session_id", Type: "string", Description: "Session ID (defaults to shared session)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "pwd",
			Name:        "Working Directory",
			Description: "Report the session's current directory",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Session ID (defaults to shared session)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "back",
			Name:        "Go Back",
			Description: "Step back through visited directories",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Session ID (defaults to shared session)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "forward",
			Name:        "Go Forward",
			Description: "Step forward after going back",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Session ID (defaults to shared session)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "history",
			Name:        "Visit History",
			Description: "List the session's visited directories",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Session ID (defaults to shared session)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "sessions.create",
			Name:        "Create Session",
			Description: "Start an isolated navigation session",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "sessions.list",
			Name:        "List Sessions",
			Description: "Summarize live navigation sessions",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
	}
}

// Cd validates the target exists and is a directory before committing it
// to the session trail.
func (n *NavOps) Cd(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path := getString(params, "path")
	if path == "" {
		return Failure("path parameter required")
	}
	sess, err := n.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	target := n.ResolvePath(sess, path)
	info, err := os.Stat(target)
	if err != nil {
		return FailErr(err)
	}
	if !info.IsDir() {
		return FailCode(types.CodeNotADirectory, "not a directory: "+target)
	}

	sess.Visit(target)
	return Success(map[string]interface{}{"path": target})
}

// Pwd reports the session's current directory.
func (n *NavOps) Pwd(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := n.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(map[string]interface{}{"path": sess.Cwd()})
}

// Back steps to the previous entry in the session trail.
func (n *NavOps) Back(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := n.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path, ok := sess.Back()
	if !ok {
		return Failure("no earlier directory in history")
	}
	return Success(map[string]interface{}{"path": path})
}

// Forward steps to the next entry after going back.
func (n *NavOps) Forward(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := n.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path, ok := sess.Forward()
	if !ok {
		return Failure("no later directory in history")
	}
	return Success(map[string]interface{}{"path": path})
}

// History lists visited directories with humanized ages.
func (n *NavOps) History(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := n.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	entries, position := sess.History()

	out := make([]interface{}, len(entries))
	for i := range entries {
		out[i] = entries[i]
	}
	return Success(map[string]interface{}{
		"entries":  out,
		"position": position,
		"count":    len(entries),
	})
}

// SessionsCreate starts an isolated session at the configured root.
func (n *NavOps) SessionsCreate(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess := n.Sessions.Create()
	if n.Metrics != nil {
		n.Metrics.SetSessionsActive(n.Sessions.Count())
	}
	return Success(map[string]interface{}{
		"session_id": sess.ID.String(),
		"path":       sess.Cwd(),
	})
}

// SessionsList summarizes live sessions.
func (n *NavOps) SessionsList(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sessions := n.Sessions.List()
	out := make([]interface{}, len(sessions))
	for i := range sessions {
		out[i] = sessions[i]
	}
	return Success(map[string]interface{}{
		"sessions": out,
		"count":    len(sessions),
	})
}
