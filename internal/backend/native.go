package backend

import (
	"os"

	"github.com/GriffinCanCode/NavFS/internal/fs/batch"
	"github.com/GriffinCanCode/NavFS/internal/fs/enumerate"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Native is the built-in implementation, backed by the core enumeration
// and batch packages. It is always available and is the fallback when no
// dynamic library binds.
type Native struct {
	engine *batch.Engine
}

// NewNative builds the built-in backend around a batch engine.
func NewNative(engine *batch.Engine) *Native {
	if engine == nil {
		engine = batch.New(0)
	}
	return &Native{engine: engine}
}

func (n *Native) Name() string { return "native" }

func (n *Native) ListFiles(path string, opts types.ListOptions) ([]types.FileEntry, error) {
	return enumerate.List(path, opts)
}

func (n *Native) CopyFile(src, dst string, opts types.CopyOptions) error {
	return n.engine.Copy(src, dst, opts)
}

func (n *Native) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (n *Native) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
