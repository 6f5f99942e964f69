/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package relay

import (
	"context"
	"fmt"

	"github.com/botobag/artemis/graphql"
)

// TypeNameField is the item field NodeField writes the concrete type name into after a refetch so
// the Node interface can resolve the concrete object type of the value.
const TypeNameField = "relayType"

// registeredNode pairs a NodeDefinition with the object type synthesized from it.
type registeredNode struct {
	definition NodeDefinition
	object     graphql.Object
}

// Registry owns the types shared by every Relay type built from it: the Node interface, the
// PageInfo object, and the concrete node types registered through NewNodeType. It is handed
// explicitly to the builders that need shared types, replacing ad-hoc lookups in a global type
// manager. Build the registry and all node types up front; once the schema is constructed the
// registry is read-only and safe for concurrent resolver use.
type Registry struct {
	node     graphql.Interface
	pageInfo graphql.Object

	// types maps collaborator names ("node", "pageInfo", concrete type names) to types.
	types map[string]graphql.Type

	// nodes maps the type name component of global ids to registered node types.
	nodes map[string]*registeredNode
}

// NewRegistry creates a Registry with freshly built Node and PageInfo types.
func NewRegistry() (*Registry, error) {
	registry := &Registry{
		types: map[string]graphql.Type{},
		nodes: map[string]*registeredNode{},
	}

	node, err := graphql.NewInterface(&graphql.InterfaceConfig{
		Name:        "Node",
		Description: "An object with a globally unique identifier.",
		Fields: graphql.Fields{
			"id": {
				Type:        graphql.NonNullOfType(graphql.ID()),
				Description: "The globally unique identifier of the object.",
			},
		},
		TypeResolver: graphql.TypeResolverFunc(registry.resolveNodeType),
	})
	if err != nil {
		return nil, err
	}
	registry.node = node

	pageInfo, err := newPageInfoType()
	if err != nil {
		return nil, err
	}
	registry.pageInfo = pageInfo

	return registry, nil
}

// MustNewRegistry is a convenience version of NewRegistry that panics on error.
func MustNewRegistry() *Registry {
	registry, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Node returns the shared Node interface.
func (registry *Registry) Node() graphql.Interface {
	return registry.node
}

// PageInfo returns the shared PageInfo object.
func (registry *Registry) PageInfo() graphql.Object {
	return registry.pageInfo
}

// Type resolves a collaborator type by name: "node", "pageInfo", or the name of any type
// registered via RegisterType or NewNodeType. It returns nil for an unknown name.
func (registry *Registry) Type(name string) graphql.Type {
	switch name {
	case "node":
		return registry.node
	case "pageInfo":
		return registry.pageInfo
	}
	return registry.types[name]
}

// RegisterType makes an externally built type resolvable through Type.
func (registry *Registry) RegisterType(name string, t graphql.Type) {
	registry.types[name] = t
}

// registerNode records the type synthesized for a definition, keyed by the type name component
// its global ids carry.
func (registry *Registry) registerNode(def NodeDefinition, object graphql.Object) {
	registry.nodes[globalIDTypeName(def.TypeName())] = &registeredNode{
		definition: def,
		object:     object,
	}
	registry.types[def.TypeName()] = object
}

// nodeFor looks up the registered node for the type name component of a global id.
func (registry *Registry) nodeFor(typeName string) *registeredNode {
	return registry.nodes[typeName]
}

// resolveNodeType is the Node interface's type resolver. It reads the type name NodeField tagged
// onto the refetched item and maps it back to the registered object type.
func (registry *Registry) resolveNodeType(
	ctx context.Context, value interface{}, info graphql.ResolveInfo) (graphql.Object, error) {
	item, ok := value.(Item)
	if !ok {
		return nil, graphql.NewError(
			fmt.Sprintf("cannot resolve concrete node type for value of type %T", value))
	}

	name, ok := item.Field(TypeNameField)
	if !ok {
		return nil, graphql.NewError("node value does not carry its concrete type name")
	}

	typeName, ok := name.(string)
	if !ok {
		return nil, graphql.NewError(fmt.Sprintf("node value carries a %T type name", name))
	}

	node := registry.nodeFor(globalIDTypeName(typeName))
	if node == nil {
		return nil, graphql.NewError(fmt.Sprintf(`no node type registered for "%s"`, typeName))
	}
	return node.object, nil
}

// newPageInfoType builds the PageInfo object. All of its resolvers read boundary information off
// the *Page produced by the enclosing connection field.
func newPageInfoType() (graphql.Object, error) {
	return graphql.NewObject(&graphql.ObjectConfig{
		Name:        "PageInfo",
		Description: "Information about pagination in a connection.",
		Fields: graphql.Fields{
			"hasNextPage": {
				Type:        graphql.NonNullOfType(graphql.Boolean()),
				Description: "When paginating forwards, are there more items?",
				Resolver: graphql.FieldResolverFunc(func(
					ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					page, err := pageOf(source)
					if err != nil {
						return nil, err
					}
					return page.Current*page.First < page.Total, nil
				}),
			},
			"hasPreviousPage": {
				Type:        graphql.NonNullOfType(graphql.Boolean()),
				Description: "When paginating forwards, are there preceding items?",
				Resolver: graphql.FieldResolverFunc(func(
					ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					page, err := pageOf(source)
					if err != nil {
						return nil, err
					}
					return page.Current > 1, nil
				}),
			},
			"startCursor": {
				Type:        graphql.T(graphql.String()),
				Description: "The cursor of the first item in the window.",
				Resolver: graphql.FieldResolverFunc(func(
					ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					page, err := pageOf(source)
					if err != nil {
						return nil, err
					}
					if len(page.Items) == 0 {
						return nil, nil
					}
					return defaultCursor(page.Items[0]), nil
				}),
			},
			"endCursor": {
				Type:        graphql.T(graphql.String()),
				Description: "The cursor of the last item in the window.",
				Resolver: graphql.FieldResolverFunc(func(
					ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					page, err := pageOf(source)
					if err != nil {
						return nil, err
					}
					if len(page.Items) == 0 {
						return nil, nil
					}
					return defaultCursor(page.Items[len(page.Items)-1]), nil
				}),
			},
		},
	})
}
