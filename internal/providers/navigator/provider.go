package navigator

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Provider implements the navigation command vocabulary
type Provider struct {
	browse   *BrowseOps
	nav      *NavOps
	info     *InfoOps
	mutate   *MutateOps
	watchers *WatchOps
	archives *ArchiveOps
	formats  *FormatOps
}

// NewProvider creates a modular navigator provider
func NewProvider(ops *NavigatorOps) *Provider {
	return &Provider{
		browse:   &BrowseOps{NavigatorOps: ops},
		nav:      &NavOps{NavigatorOps: ops},
		info:     &InfoOps{NavigatorOps: ops},
		mutate:   &MutateOps{NavigatorOps: ops},
		watchers: &WatchOps{NavigatorOps: ops},
		archives: &ArchiveOps{NavigatorOps: ops},
		formats:  &FormatOps{NavigatorOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.browse.GetTools()...)
	tools = append(tools, p.nav.GetTools()...)
	tools = append(tools, p.info.GetTools()...)
	tools = append(tools, p.mutate.GetTools()...)
	tools = append(tools, p.watchers.GetTools()...)
	tools = append(tools, p.archives.GetTools()...)
	tools = append(tools, p.formats.GetTools()...)

	return types.Service{
		ID:          "navigator",
		Name:        "Navigator Service",
		Description: "Filesystem navigation, inspection, and batch operations",
		Category:    types.CategoryNavigation,
		Capabilities: []string{
			"browse",
			"navigate",
			"inspect",
			"mutate",
			"watch",
			"archive",
			"formats",
		},
		Tools: tools,
	}
}

// Execute routes to the appropriate module
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	// Enumeration
	case "list":
		return p.browse.List(ctx, params, appCtx)
	case "search":
		return p.browse.Search(ctx, params, appCtx)
	case "glob":
		return p.browse.Glob(ctx, params, appCtx)
	case "tree":
		return p.browse.Tree(ctx, params, appCtx)
	case "dirsize":
		return p.browse.DirSize(ctx, params, appCtx)

	// Session navigation
	case "cd":
		return p.nav.Cd(ctx, params, appCtx)
	case "pwd":
		return p.nav.Pwd(ctx, params, appCtx)
	case "back":
		return p.nav.Back(ctx, params, appCtx)
	case "forward":
		return p.nav.Forward(ctx, params, appCtx)
	case "history":
		return p.nav.History(ctx, params, appCtx)
	case "sessions.create":
		return p.nav.SessionsCreate(ctx, params, appCtx)
	case "sessions.list":
		return p.nav.SessionsList(ctx, params, appCtx)

	// Inspection
	case "info":
		return p.info.Info(ctx, params, appCtx)
	case "diskinfo":
		return p.info.DiskInfo(ctx, params, appCtx)
	case "mime":
		return p.info.Mime(ctx, params, appCtx)
	case "hash":
		return p.info.Hash(ctx, params, appCtx)
	case "backend.status":
		return p.info.BackendStatus(ctx, params, appCtx)

	// Mutation
	case "mkdir":
		return p.mutate.Mkdir(ctx, params, appCtx)
	case "delete":
		return p.mutate.Delete(ctx, params, appCtx)
	case "copy":
		return p.mutate.Copy(ctx, params, appCtx)
	case "move":
		return p.mutate.Move(ctx, params, appCtx)
	case "rename":
		return p.mutate.Rename(ctx, params, appCtx)
	case "touch":
		return p.mutate.Touch(ctx, params, appCtx)
	case "symlink":
		return p.mutate.Symlink(ctx, params, appCtx)
	case "readlink":
		return p.mutate.Readlink(ctx, params, appCtx)
	case "chmod":
		return p.mutate.Chmod(ctx, params, appCtx)

	// Change monitoring
	case "watch.start":
		return p.watchers.Start(ctx, params, appCtx)
	case "watch.stop":
		return p.watchers.Stop(ctx, params, appCtx)
	case "watch.list":
		return p.watchers.List(ctx, params, appCtx)
	case "watch.events":
		return p.watchers.Events(ctx, params, appCtx)

	// Archives
	case "archive.create":
		return p.archives.Create(ctx, params, appCtx)
	case "archive.extract":
		return p.archives.Extract(ctx, params, appCtx)

	// Structured formats
	case "fmt.read":
		return p.formats.Read(ctx, params, appCtx)
	case "fmt.write":
		return p.formats.Write(ctx, params, appCtx)

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
