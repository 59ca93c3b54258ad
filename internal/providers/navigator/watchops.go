package navigator

import (
	"context"
	"os"

	"github.com/GriffinCanCode/NavFS/internal/shared/id"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// WatchOps handles change monitoring commands.
type WatchOps struct {
	*NavigatorOps
}

// GetTools returns watch tool definitions
func (w *WatchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "watch.start",
			Name:        "Start Watch",
			Description: "Monitor a directory for changes",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory to watch", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "watch.stop",
			Name:        "Stop Watch",
			Description: "Stop a running watch",
			Parameters: []types.Parameter{
				{Name: "watch_id", Type: "string", Description: "Watch ID", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "watch.list",
			Name:        "List Watches",
			Description: "List active watches",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
		{
			ID:          "watch.events",
			Name:        "Watch Events",
			Description: "Drain buffered events for a watch",
			Parameters: []types.Parameter{
				{Name: "watch_id", Type: "string", Description: "Watch ID", Required: true},
			},
			Returns: "array",
		},
	}
}

// Start begins monitoring a directory and returns the watch handle.
func (w *WatchOps) Start(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := w.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := w.ResolvePath(sess, raw)

	info, err := os.Stat(path)
	if err != nil {
		return FailErr(err)
	}
	if !info.IsDir() {
		return FailCode(types.CodeNotADirectory, "not a directory: "+path)
	}

	wid, err := w.Watches.Start(path)
	if err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{
		"watch_id": wid.String(),
		"path":     path,
	})
}

// Stop halts a watch and waits for its goroutine to exit.
func (w *WatchOps) Stop(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	wid := getString(params, "watch_id")
	if wid == "" {
		return Failure("watch_id parameter required")
	}
	if !w.Watches.Stop(id.WatchID(wid)) {
		return FailCode(types.CodeNotFound, "watch not found: "+wid)
	}
	return Success(map[string]interface{}{
		"watch_id": wid,
		"stopped":  true,
	})
}

// List summarizes active watches.
func (w *WatchOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	watches := w.Watches.List()
	out := make([]interface{}, len(watches))
	for i := range watches {
		out[i] = watches[i]
	}
	return Success(map[string]interface{}{
		"watches": out,
		"count":   len(watches),
	})
}

// Events returns the buffered events for a watch.
func (w *WatchOps) Events(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	wid := getString(params, "watch_id")
	if wid == "" {
		return Failure("watch_id parameter required")
	}
	events, ok := w.Watches.Events(id.WatchID(wid))
	if !ok {
		return FailCode(types.CodeNotFound, "watch not found: "+wid)
	}
	out := make([]interface{}, len(events))
	for i := range events {
		out[i] = events[i]
	}
	return Success(map[string]interface{}{
		"watch_id": wid,
		"events":   out,
		"count":    len(events),
	})
}
