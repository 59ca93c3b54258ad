package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

// Registry manages command discovery and execution. It is an owned
// instance: each dispatcher holds its own, so multiple logical sessions
// never share mutable registry state.
type Registry struct {
	services sync.Map // service ID -> Provider
	tools    sync.Map // tool ID -> Provider
}

// Provider interface for command implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service provider and indexes every tool it exposes.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.services.Store(def.ID, provider)
	for _, tool := range def.Tools {
		r.tools.Store(tool.ID, provider)
	}
	return nil
}

// Unregister removes a service provider and its tool index entries.
func (r *Registry) Unregister(serviceID string) {
	val, ok := r.services.LoadAndDelete(serviceID)
	if !ok {
		return
	}
	def := val.(Provider).Definition()
	for _, tool := range def.Tools {
		r.tools.Delete(tool.ID)
	}
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// Resolve finds the provider that owns a tool ID.
func (r *Registry) Resolve(toolID string) (Provider, bool) {
	val, ok := r.tools.Load(toolID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered services
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	return services
}

// Execute resolves a tool ID and runs it. An unknown tool is a
// dispatch-level error; a panicking provider degrades to a generic error
// envelope so the boundary never emits partial output.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (result *types.Result, err error) {
	provider, ok := r.Resolve(toolID)
	if !ok {
		msg := fmt.Sprintf("unknown command: %s", toolID)
		return &types.Result{
			Success: false,
			Code:    types.CodeInvalidRequest,
			Error:   &msg,
		}, fmt.Errorf("unknown command: %s", toolID)
	}

	defer func() {
		if rec := recover(); rec != nil {
			msg := "internal error"
			result = &types.Result{
				Success: false,
				Code:    types.CodeIOFailure,
				Error:   &msg,
			}
			err = fmt.Errorf("command %s panicked: %v", toolID, rec)
		}
	}()

	return provider.Execute(ctx, toolID, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}
