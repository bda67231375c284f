package tool

import (
	"context"
	"fmt"
	"sort"

	"github.com/dugout-ai/dugout/internal/mlb"
	"github.com/dugout-ai/dugout/internal/types"
)

// BaseURLs maps API version bases to concrete endpoints.
type BaseURLs struct {
	V1  string
	V11 string
}

// Registry is the fixed catalogue of tools. It is immutable after
// construction and read concurrently by every workflow run, so lookups
// take no locks: the maps are built once and never written again.
type Registry struct {
	client *mlb.Client
	bases  map[string]string
	tools  map[string]Binding
	names  []string
}

// NewRegistry builds a Registry over the shared retrying client.
// Duplicate binding names and unknown bases are construction errors.
func NewRegistry(client *mlb.Client, bases BaseURLs, bindings []Binding) (*Registry, error) {
	if client == nil {
		return nil, types.NewError(types.TOOL_NOT_FOUND, "registry requires a client")
	}

	r := &Registry{
		client: client,
		bases: map[string]string{
			BaseV1:  bases.V1,
			BaseV11: bases.V11,
		},
		tools: make(map[string]Binding, len(bindings)),
	}

	for _, b := range bindings {
		if b.Name == "" {
			return nil, types.NewError(ErrToolAlreadyExists, "binding must have a name")
		}
		if _, exists := r.tools[b.Name]; exists {
			return nil, types.NewError(ErrToolAlreadyExists, fmt.Sprintf("tool %q already registered", b.Name))
		}
		if _, ok := r.bases[b.Base]; !ok {
			return nil, types.NewError(ErrToolNotFound, fmt.Sprintf("tool %q references unknown base %q", b.Name, b.Base))
		}
		r.tools[b.Name] = b
		r.names = append(r.names, b.Name)
	}
	sort.Strings(r.names)

	return r, nil
}

// Get retrieves a binding by name.
func (r *Registry) Get(name string) (Binding, error) {
	b, ok := r.tools[name]
	if !ok {
		return Binding{}, types.NewError(ErrToolNotFound, fmt.Sprintf("tool %q not found", name))
	}
	return b, nil
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	return r.names
}

// Descriptors returns descriptors for every registered tool, sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tools[name].Describe())
	}
	return out
}

// Invoke executes the named tool with the given arguments and returns the
// upstream JSON document unmodified.
//
// Failure surface: an unknown name is TOOL_NOT_FOUND; an absent required
// parameter is TOOL_MISSING_PARAMETER; exhausted retries, transport
// failures, and unparseable bodies are TOOL_UPSTREAM_FAILED. All are
// recoverable at the workflow level.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	b, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	u, missing := b.buildURL(r.bases[b.Base], args)
	if len(missing) > 0 {
		return nil, types.NewError(ErrToolMissingParameter,
			fmt.Sprintf("tool %q missing required parameter(s): %v", name, missing))
	}

	out, err := r.client.GetJSON(ctx, u)
	if err != nil {
		return nil, types.WrapError(ErrToolUpstreamFailed,
			fmt.Sprintf("tool %q upstream call failed", name), err)
	}
	return out, nil
}
