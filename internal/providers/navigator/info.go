package navigator

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/NavFS/internal/fs/disk"
	"github.com/GriffinCanCode/NavFS/internal/fs/meta"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/GriffinCanCode/NavFS/internal/shared/utils"
	"github.com/gabriel-vasile/mimetype"
)

// InfoOps handles inspection commands.
type InfoOps struct {
	*NavigatorOps
}

// GetTools returns inspection tool definitions
func (i *InfoOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "info",
			Name:        "Path Info",
			Description: "Metadata snapshot of a path, or a summary of the current directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path (omit for cwd summary)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "diskinfo",
			Name:        "Disk Usage",
			Description: "Live usage of the filesystem containing a path",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Any path on the filesystem (defaults to cwd)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "mime",
			Name:        "MIME Type",
			Description: "Detect a file's MIME type from content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "hash",
			Name:        "Content Hash",
			Description: "Hex digest of file contents (sha256 or blake2b)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "algorithm", Type: "string", Description: "sha256 (default) or blake2b", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "backend.status",
			Name:        "Backend Status",
			Description: "Dynamic backend loader and breaker state",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
	}
}

// Info returns a metadata snapshot. With no path it summarizes the
// session's current directory instead: entry count plus disk usage.
func (i *InfoOps) Info(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := i.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	if raw := getString(params, "path"); raw != "" {
		path := i.ResolvePath(sess, raw)
		entry, err := meta.Collect(path)
		if err != nil {
			return FailErr(err)
		}
		return Success(map[string]interface{}{"entry": entry})
	}

	cwd := sess.Cwd()
	names, err := os.ReadDir(cwd)
	if err != nil {
		return FailErr(err)
	}
	usage, err := disk.Usage(cwd)
	if err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{
		"path":  cwd,
		"items": len(names),
		"disk":  usage,
	})
}

// DiskInfo reads a fresh statfs snapshot, never cached.
func (i *InfoOps) DiskInfo(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess, err := i.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := i.ResolvePath(sess, getString(params, "path"))

	usage, err := disk.Usage(path)
	if err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{
		"path":                usage.Path,
		"filesystem":          usage.Filesystem,
		"total_bytes":         usage.TotalBytes,
		"free_bytes":          usage.FreeBytes,
		"available_bytes":     usage.AvailableBytes,
		"used_bytes":          usage.UsedBytes,
		"usage_percent":       usage.UsagePercent,
		"total_formatted":     usage.TotalFormatted,
		"free_formatted":      usage.FreeFormatted,
		"available_formatted": usage.AvailableFormatted,
		"used_formatted":      usage.UsedFormatted,
	})
}

// Mime sniffs the MIME type from file content, not the extension.
func (i *InfoOps) Mime(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := i.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := i.ResolvePath(sess, raw)

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{
		"path":      path,
		"mime":      mtype.String(),
		"extension": strings.TrimPrefix(filepath.Ext(path), "."),
	})
}

// Hash streams file contents through the selected digest.
func (i *InfoOps) Hash(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := i.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := i.ResolvePath(sess, raw)

	algorithm := getString(params, "algorithm")
	if algorithm == "" {
		algorithm = string(utils.SHA256)
	}
	hasher, err := utils.NewHasher(utils.HashAlgorithm(algorithm))
	if err != nil {
		return Failure(err.Error())
	}

	digest, err := hasher.HashFile(path)
	if err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{
		"path":      path,
		"algorithm": string(hasher.Algorithm()),
		"digest":    digest,
	})
}

// BackendStatus exposes the loader observers.
func (i *InfoOps) BackendStatus(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return Success(i.Backends.Status())
}
