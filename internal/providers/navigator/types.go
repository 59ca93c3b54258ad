package navigator

import (
	"github.com/GriffinCanCode/NavFS/internal/backend"
	"github.com/GriffinCanCode/NavFS/internal/domain/session"
	"github.com/GriffinCanCode/NavFS/internal/domain/watch"
	"github.com/GriffinCanCode/NavFS/internal/fs/batch"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NavFS/internal/shared/paths"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/GriffinCanCode/NavFS/internal/shared/utils"
)

// NavigatorOps provides shared dependencies for all command modules.
type NavigatorOps struct {
	Policy   paths.Policy
	Sessions *session.Manager
	Engine   *batch.Engine
	Backends *backend.Registry
	Watches  *watch.Manager
	Metrics  *monitoring.Metrics
}

// ResolvePath composes an input path with the session's current directory
// and normalizes the result. An empty input resolves to the cwd itself.
func (ops *NavigatorOps) ResolvePath(sess *session.Session, input string) string {
	return paths.Normalize(paths.Resolve(sess.Cwd(), input))
}

// SessionFor resolves the calling session from explicit params or the
// request context, falling back to the shared default session.
func (ops *NavigatorOps) SessionFor(params map[string]interface{}, appCtx *types.Context) (*session.Session, error) {
	if sid, ok := params["session_id"].(string); ok && sid != "" {
		return ops.Sessions.Resolve(&sid)
	}
	if appCtx != nil && appCtx.SessionID != nil {
		return ops.Sessions.Resolve(appCtx.SessionID)
	}
	return ops.Sessions.Resolve(nil)
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Code: types.CodeInvalidRequest, Error: &msg}, nil
}

// FailCode builds a failure envelope with an explicit taxonomy code.
func FailCode(code types.ErrorCode, message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Code: code, Error: &msg}, nil
}

// FailErr classifies an OS-level error into the taxonomy and wraps it in
// a failure envelope.
func FailErr(err error) (*types.Result, error) {
	msg := err.Error()
	return &types.Result{Success: false, Code: types.CodeFromErr(err), Error: &msg}, nil
}

// Unsafe is the rejection for paths the safety policy refuses to mutate.
func Unsafe(path string) (*types.Result, error) {
	return FailCode(types.CodeUnsafePath, "unsafe path: "+path)
}

func getString(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

func getBool(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}

// getInt tolerates JSON numbers arriving as float64.
func getInt(params map[string]interface{}, key string) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func listOptions(params map[string]interface{}) types.ListOptions {
	return types.ListOptions{
		Recursive:      getBool(params, "recursive"),
		ShowHidden:     getBool(params, "show_hidden"),
		NamePattern:    getString(params, "pattern"),
		MaxDepth:       getInt(params, "max_depth"),
		FollowSymlinks: getBool(params, "follow_symlinks"),
	}
}

func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return utils.FormatBytes(uint64(n))
}

// entriesPayload flattens FileEntry values for the JSON envelope.
func entriesPayload(entries []types.FileEntry) []interface{} {
	out := make([]interface{}, len(entries))
	for i := range entries {
		out[i] = entries[i]
	}
	return out
}
