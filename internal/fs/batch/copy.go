package batch

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Copy duplicates src at dst. Symlinks are recreated as links and their
// target content is never read. Directories are refused unless
// opts.Recursive is set; with it they copy their whole subtree, aborting
// on the first unrecoverable child error. Regular files stream through
// the engine's buffer and only on full success receive the attributes the
// options ask for; owner propagation failure is tolerated silently.
func (e *Engine) Copy(src, dst string, opts types.CopyOptions) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if info.IsDir() && !opts.Recursive {
		return &fs.PathError{Op: "copy", Path: src, Err: syscall.EISDIR}
	}

	if !opts.Overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return &fs.PathError{Op: "copy", Path: dst, Err: syscall.EEXIST}
		}
	}

	if opts.CreateDestDirs {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return e.copySymlink(src, dst)
	case info.IsDir():
		return e.copyTree(src, dst, info, opts)
	default:
		return e.copyFile(src, dst, info, opts)
	}
}

// copyTree copies a directory subtree using an explicit work stack. The
// source tree is assumed stable for the duration of the call; concurrent
// external mutation yields a partial snapshot, not an error.
func (e *Engine) copyTree(src, dst string, info os.FileInfo, opts types.CopyOptions) error {
	type job struct {
		src, dst string
	}

	// Directories created along the way, recorded so timestamps can be
	// applied after their contents stop touching them.
	type made struct {
		src, dst string
	}
	var created []made

	stack := []job{{src, dst}}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		srcInfo, err := os.Lstat(j.src)
		if err != nil {
			return fmt.Errorf("copy %s: %w", j.src, err)
		}

		switch {
		case srcInfo.Mode()&os.ModeSymlink != 0:
			if err := e.copySymlink(j.src, j.dst); err != nil {
				return fmt.Errorf("copy %s: %w", j.src, err)
			}
		case srcInfo.IsDir():
			if err := os.MkdirAll(j.dst, srcInfo.Mode().Perm()); err != nil {
				return fmt.Errorf("copy %s: %w", j.src, err)
			}
			created = append(created, made{j.src, j.dst})

			dirents, err := os.ReadDir(j.src)
			if err != nil {
				return fmt.Errorf("copy %s: %w", j.src, err)
			}
			for _, de := range dirents {
				stack = append(stack, job{
					filepath.Join(j.src, de.Name()),
					filepath.Join(j.dst, de.Name()),
				})
			}
		default:
			if err := e.copyFile(j.src, j.dst, srcInfo, opts); err != nil {
				return fmt.Errorf("copy %s: %w", j.src, err)
			}
		}
	}

	// Children are in place; settle directory attributes last so file
	// writes do not disturb preserved timestamps.
	for i := len(created) - 1; i >= 0; i-- {
		if err := applyAttrs(created[i].src, created[i].dst, opts); err != nil {
			return err
		}
	}
	return nil
}

// copySymlink recreates the link itself. An existing destination is
// removed first; lstat above already enforced the overwrite option.
func (e *Engine) copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	return os.Symlink(target, dst)
}

func (e *Engine) copyFile(src, dst string, info os.FileInfo, opts types.CopyOptions) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	buf := make([]byte, e.bufSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return applyAttrs(src, dst, opts)
}

// applyAttrs propagates the requested attributes from src to dst after a
// successful copy. Ownership changes require privilege, so a chown failure
// is swallowed rather than failing the finished copy.
func applyAttrs(src, dst string, opts types.CopyOptions) error {
	if !opts.PreserveTimestamps && !opts.PreservePermissions && !opts.PreserveOwner {
		return nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if opts.PreservePermissions {
		if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
			return err
		}
	}
	if opts.PreserveOwner {
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			_ = os.Chown(dst, int(st.Uid), int(st.Gid))
		}
	}
	if opts.PreserveTimestamps {
		if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
			return err
		}
	}
	return nil
}

// BatchCopy applies Copy independently per pair. One item's failure never
// halts the remaining items; the outcome carries each item's result plus
// aggregate counts, and nothing already copied is rolled back.
func (e *Engine) BatchCopy(pairs []Pair, opts types.CopyOptions) Outcome {
	out := Outcome{Items: make([]ItemOutcome, 0, len(pairs))}
	for _, p := range pairs {
		item := ItemOutcome{Source: p.Source, Destination: p.Destination}
		if err := e.Copy(p.Source, p.Destination, opts); err != nil {
			item.Error = err.Error()
			item.Code = types.CodeFromErr(err)
			out.Failed++
		} else {
			item.Success = true
			out.Succeeded++
		}
		out.Items = append(out.Items, item)
	}
	return out
}
