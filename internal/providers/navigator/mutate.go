package navigator

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/GriffinCanCode/NavFS/internal/domain/session"
	"github.com/GriffinCanCode/NavFS/internal/fs/batch"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// MutateOps handles commands that change the filesystem.
type MutateOps struct {
	*NavigatorOps
}

// GetTools returns mutation tool definitions
func (m *MutateOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "mkdir",
			Name:        "Create Directory",
			Description: "Create a directory, optionally with parents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "parents", Type: "boolean", Description: "Create missing parents", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "delete",
			Name:        "Delete",
			Description: "Delete a file or directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Target path", Required: true},
				{Name: "recursive", Type: "boolean", Description: "Delete non-empty directories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "copy",
			Name:        "Copy",
			Description: "Copy a file, directory tree, or batch of pairs",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: false},
				{Name: "destination", Type: "string", Description: "Destination path", Required: false},
				{Name: "pairs", Type: "array", Description: "Batch of {source, destination} pairs", Required: false},
				{Name: "recursive", Type: "boolean", Description: "Copy directory trees", Required: false},
				{Name: "overwrite", Type: "boolean", Description: "Replace existing destination", Required: false},
				{Name: "preserve_timestamps", Type: "boolean", Description: "Carry source timestamps", Required: false},
				{Name: "preserve_permissions", Type: "boolean", Description: "Carry source permission bits", Required: false},
				{Name: "preserve_owner", Type: "boolean", Description: "Carry source ownership", Required: false},
				{Name: "create_dest_dirs", Type: "boolean", Description: "Create missing destination parents", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "move",
			Name:        "Move",
			Description: "Move a file or directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "rename",
			Name:        "Rename",
			Description: "Rename a file or directory in place",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Target path", Required: false},
				{Name: "new_name", Type: "string", Description: "New name within the same directory", Required: false},
				{Name: "source", Type: "string", Description: "Source path (alternative form)", Required: false},
				{Name: "destination", Type: "string", Description: "Destination path (alternative form)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "touch",
			Name:        "Touch",
			Description: "Create an empty file or refresh its timestamps",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "symlink",
			Name:        "Create Symlink",
			Description: "Create a symbolic link",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Link path", Required: true},
				{Name: "target", Type: "string", Description: "Link target", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "readlink",
			Name:        "Read Symlink",
			Description: "Read a symbolic link's target",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Link path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "chmod",
			Name:        "Change Mode",
			Description: "Change permission bits (octal mode)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Target path", Required: true},
				{Name: "mode", Type: "string", Description: "Octal mode (e.g. '0755')", Required: true},
			},
			Returns: "object",
		},
	}
}

// Mkdir creates a directory. An existing directory is reported, never an
// error; an existing non-directory is AlreadyExists.
func (m *MutateOps) Mkdir(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := m.ResolvePath(sess, raw)
	if !m.Policy.IsSafe(path) {
		return Unsafe(path)
	}

	existed := false
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		existed = true
	}
	if err := m.Engine.Mkdir(path, getBool(params, "parents")); err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{"path": path, "created": !existed})
}

// Delete removes a file or directory. Non-empty directories require
// recursive; a refused delete leaves the tree intact.
func (m *MutateOps) Delete(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := m.ResolvePath(sess, raw)
	if !m.Policy.IsSafe(path) {
		return Unsafe(path)
	}

	if err := m.Engine.Delete(path, getBool(params, "recursive")); err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{"path": path, "deleted": true})
}

func copyOptions(params map[string]interface{}) types.CopyOptions {
	return types.CopyOptions{
		Recursive:           getBool(params, "recursive"),
		Overwrite:           getBool(params, "overwrite"),
		PreserveTimestamps:  getBool(params, "preserve_timestamps"),
		PreservePermissions: getBool(params, "preserve_permissions"),
		PreserveOwner:       getBool(params, "preserve_owner"),
		CreateDestDirs:      getBool(params, "create_dest_dirs"),
	}
}

// Copy duplicates one source or a batch of pairs. Directory sources need
// recursive set. Batch items are independent: one failure never stops the
// remaining items.
func (m *MutateOps) Copy(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	opts := copyOptions(params)

	if raw, ok := params["pairs"].([]interface{}); ok {
		return m.copyBatch(sess, raw, opts)
	}

	src := getString(params, "source")
	dst := getString(params, "destination")
	if src == "" || dst == "" {
		return Failure("source and destination parameters required")
	}
	src = m.ResolvePath(sess, src)
	dst = m.ResolvePath(sess, dst)
	if !m.Policy.IsSafe(dst) {
		return Unsafe(dst)
	}

	if err := m.Backends.CopyFile(src, dst, opts); err != nil {
		if m.Metrics != nil {
			m.Metrics.RecordBatchItem("copy", "failed")
		}
		return FailErr(err)
	}
	if m.Metrics != nil {
		m.Metrics.RecordBatchItem("copy", "succeeded")
	}
	return Success(map[string]interface{}{"source": src, "destination": dst})
}

func (m *MutateOps) copyBatch(sess *session.Session, raw []interface{}, opts types.CopyOptions) (*types.Result, error) {
	pairs := make([]batch.Pair, 0, len(raw))
	for _, item := range raw {
		p, ok := item.(map[string]interface{})
		if !ok {
			return Failure("pairs must be objects with source and destination")
		}
		src := getString(p, "source")
		dst := getString(p, "destination")
		if src == "" || dst == "" {
			return Failure("each pair requires source and destination")
		}
		dst = m.ResolvePath(sess, dst)
		if !m.Policy.IsSafe(dst) {
			return Unsafe(dst)
		}
		pairs = append(pairs, batch.Pair{Source: m.ResolvePath(sess, src), Destination: dst})
	}

	outcome := m.Engine.BatchCopy(pairs, opts)
	if m.Metrics != nil {
		for _, item := range outcome.Items {
			status := "succeeded"
			if !item.Success {
				status = "failed"
			}
			m.Metrics.RecordBatchItem("copy", status)
		}
	}

	items := make([]interface{}, len(outcome.Items))
	for i := range outcome.Items {
		items[i] = outcome.Items[i]
	}
	return Success(map[string]interface{}{
		"items":     items,
		"succeeded": outcome.Succeeded,
		"failed":    outcome.Failed,
	})
}

// Move relocates a file or directory via rename.
func (m *MutateOps) Move(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	src := getString(params, "source")
	dst := getString(params, "destination")
	if src == "" || dst == "" {
		return Failure("source and destination parameters required")
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	src = m.ResolvePath(sess, src)
	dst = m.ResolvePath(sess, dst)
	if !m.Policy.IsSafe(src) {
		return Unsafe(src)
	}
	if !m.Policy.IsSafe(dst) {
		return Unsafe(dst)
	}

	if err := m.Engine.Move(src, dst); err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{"source": src, "destination": dst})
}

// Rename accepts either path+new_name or source+destination.
func (m *MutateOps) Rename(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	src := getString(params, "source")
	dst := getString(params, "destination")
	if src == "" {
		src = getString(params, "path")
		newName := getString(params, "new_name")
		if src == "" || newName == "" {
			return Failure("path and new_name (or source and destination) required")
		}
		if newName != filepath.Base(newName) {
			return Failure("new_name must not contain path separators")
		}
		dst = filepath.Join(filepath.Dir(src), newName)
	}
	params["source"] = src
	params["destination"] = dst
	return m.Move(ctx, params, appCtx)
}

// Touch creates an empty file or refreshes an existing one's timestamps.
func (m *MutateOps) Touch(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := m.ResolvePath(sess, raw)
	if !m.Policy.IsSafe(path) {
		return Unsafe(path)
	}

	if _, statErr := os.Lstat(path); statErr == nil {
		now := time.Now()
		if err := os.Chtimes(path, now, now); err != nil {
			return FailErr(err)
		}
		return Success(map[string]interface{}{"path": path, "created": false})
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return FailErr(err)
	}
	f.Close()
	return Success(map[string]interface{}{"path": path, "created": true})
}

// Symlink creates a symbolic link. The target may dangle.
func (m *MutateOps) Symlink(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	target := getString(params, "target")
	if raw == "" || target == "" {
		return Failure("path and target parameters required")
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := m.ResolvePath(sess, raw)
	if !m.Policy.IsSafe(path) {
		return Unsafe(path)
	}

	if err := os.Symlink(target, path); err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{"path": path, "target": target})
}

// Readlink reads a symbolic link's target without following it.
func (m *MutateOps) Readlink(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := m.ResolvePath(sess, raw)

	target, err := os.Readlink(path)
	if err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{"path": path, "target": target})
}

// Chmod changes permission bits from an octal mode string.
func (m *MutateOps) Chmod(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	modeStr := getString(params, "mode")
	if modeStr == "" {
		return Failure("mode parameter required")
	}
	mode, err := strconv.ParseUint(modeStr, 8, 32)
	if err != nil {
		return Failure("invalid octal mode: " + modeStr)
	}
	sess, err := m.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := m.ResolvePath(sess, raw)
	if !m.Policy.IsSafe(path) {
		return Unsafe(path)
	}

	if err := os.Chmod(path, os.FileMode(mode)); err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{"path": path, "mode": modeStr})
}
