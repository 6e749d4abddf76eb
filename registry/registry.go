// Package registry implements the polymorphic single-dispatch contract
// external collaborators (such as the printer) use to handle AST nodes
// without the core knowing about them: a handler is registered per
// concrete node type, keyed by its reflect.Type, and dispatch rejects
// loudly when no handler exists for a variant.
package registry

import (
	"fmt"
	"reflect"

	"github.com/oarkflow/ledgerlex/ast"
)

// Handler produces a collaborator-specific result for one AST node.
type Handler func(node ast.Node) (any, error)

// Registry maps a node's concrete type to the handler registered for
// it. The zero value is ready to use.
type Registry struct {
	handlers map[reflect.Type]Handler
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[reflect.Type]Handler)}
}

// Register associates handler with the concrete type of sample. A
// second Register call for the same type replaces the first.
func (r *Registry) Register(sample ast.Node, handler Handler) {
	if r.handlers == nil {
		r.handlers = make(map[reflect.Type]Handler)
	}
	r.handlers[reflect.TypeOf(sample)] = handler
}

// Dispatch invokes the handler registered for node's concrete type. An
// unregistered variant is an error, not a silent no-op.
func (r *Registry) Dispatch(node ast.Node) (any, error) {
	h, ok := r.handlers[reflect.TypeOf(node)]
	if !ok {
		return nil, fmt.Errorf("registry: no handler registered for %T", node)
	}
	return h(node)
}
