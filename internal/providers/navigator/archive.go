package navigator

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ArchiveOps handles tar archive commands with gzip/zstd compression.
type ArchiveOps struct {
	*NavigatorOps
}

// GetTools returns archive tool definitions
func (a *ArchiveOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "archive.create",
			Name:        "Create Archive",
			Description: "Pack a directory into a tar archive (none/gzip/zstd)",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source directory", Required: true},
				{Name: "output", Type: "string", Description: "Output archive path", Required: true},
				{Name: "compression", Type: "string", Description: "none, gzip (default), or zstd", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "archive.extract",
			Name:        "Extract Archive",
			Description: "Unpack a tar archive (compression auto-detected)",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
	}
}

// Create packs a directory tree into a tar archive.
func (a *ArchiveOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source := getString(params, "source")
	output := getString(params, "output")
	if source == "" || output == "" {
		return Failure("source and output parameters required")
	}
	sess, err := a.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	source = a.ResolvePath(sess, source)
	output = a.ResolvePath(sess, output)
	if !a.Policy.IsSafe(output) {
		return Unsafe(output)
	}

	compression := getString(params, "compression")
	if compression == "" {
		compression = "gzip"
	}

	outFile, err := os.Create(output)
	if err != nil {
		return FailErr(err)
	}
	defer outFile.Close()

	var tw *tar.Writer
	switch compression {
	case "gzip":
		gz := gzip.NewWriter(outFile)
		defer gz.Close()
		tw = tar.NewWriter(gz)
	case "zstd":
		zw, _ := zstd.NewWriter(outFile)
		defer zw.Close()
		tw = tar.NewWriter(zw)
	case "none":
		tw = tar.NewWriter(outFile)
	default:
		return Failure("unknown compression: " + compression)
	}
	defer tw.Close()

	files := 0
	var total int64
	// Tar entries are written in walk order; a single worker keeps the
	// writer and counters free of concurrent access.
	conf := fastwalk.Config{Follow: false, NumWorkers: 1, Sort: fastwalk.SortDirsFirst}
	err = fastwalk.Walk(&conf, source, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || p == source {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(source, p)
		if relErr != nil {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return nil
		}
		header.Name = rel
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if d.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer f.Close()
		n, err := io.Copy(tw, f)
		if err != nil {
			return err
		}
		total += n
		files++
		return nil
	})
	if err != nil {
		return Failure(fmt.Sprintf("archive creation failed: %v", err))
	}

	return Success(map[string]interface{}{
		"archive":     output,
		"files":       files,
		"total_bytes": total,
		"compression": compression,
	})
}

// Extract unpacks a tar archive. Entries that would escape the
// destination are skipped.
func (a *ArchiveOps) Extract(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	archive := getString(params, "archive")
	destination := getString(params, "destination")
	if archive == "" || destination == "" {
		return Failure("archive and destination parameters required")
	}
	sess, err := a.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	archive = a.ResolvePath(sess, archive)
	destination = a.ResolvePath(sess, destination)
	if !a.Policy.IsSafe(destination) {
		return Unsafe(destination)
	}

	f, err := os.Open(archive)
	if err != nil {
		return FailErr(err)
	}
	defer f.Close()

	var tr *tar.Reader
	switch {
	case strings.HasSuffix(archive, ".gz") || strings.HasSuffix(archive, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Failure(fmt.Sprintf("gzip failed: %v", err))
		}
		defer gz.Close()
		tr = tar.NewReader(gz)
	case strings.HasSuffix(archive, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return Failure(fmt.Sprintf("zstd failed: %v", err))
		}
		defer zr.Close()
		tr = tar.NewReader(zr)
	default:
		tr = tar.NewReader(f)
	}

	files := 0
	for {
		select {
		case <-ctx.Done():
			return Failure(fmt.Sprintf("extraction cancelled: %v", ctx.Err()))
		default:
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(fmt.Sprintf("corrupt archive: %v", err))
		}

		dest := filepath.Join(destination, header.Name)
		if !strings.HasPrefix(dest, filepath.Clean(destination)+string(os.PathSeparator)) {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			os.MkdirAll(dest, os.FileMode(header.Mode)&0o777)
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				continue
			}
			out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode)&0o777)
			if err != nil {
				continue
			}
			_, err = io.Copy(out, tr)
			out.Close()
			if err == nil {
				files++
			}
		case tar.TypeSymlink:
			os.Symlink(header.Linkname, dest)
		}
	}

	return Success(map[string]interface{}{
		"archive":     archive,
		"destination": destination,
		"files":       files,
	})
}
