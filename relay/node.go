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
	"unicode"
	"unicode/utf8"

	"github.com/botobag/artemis/graphql"

	"github.com/botobag/relay/globalid"
)

// NodeDefinition describes a concrete object type that participates in global identification. The
// shared building logic in NewNodeType operates over this interface; a definition only supplies
// what is specific to its type.
type NodeDefinition interface {
	// TypeName is the GraphQL object type name. Its first letter is lowercased to form the type
	// name component of global ids.
	TypeName() string

	// Fields returns the type's own field configuration, excluding the synthesized "id" field and
	// connection fields.
	Fields() graphql.Fields

	// ResolveByID loads the object identified by a raw id (the decoded payload of a global id).
	// Returning (nil, nil) resolves the node to null; returning a *NotFoundError surfaces a field
	// error instead. Each definition documents which policy it follows.
	ResolveByID(ctx context.Context, id string) (interface{}, error)
}

// ConnectionsProvider is implemented by node definitions that declare relations to related lists.
// Each declared relation becomes a paginated connection field on the synthesized type.
type ConnectionsProvider interface {
	Connections() Connections
}

// IdentifierResolver is implemented by node definitions that override how the raw identifier is
// read off a source object. Without it, the source item's "id" field is used.
type IdentifierResolver interface {
	Identifier(source interface{}) (string, error)
}

// NewNodeType synthesizes the object type for a definition: the declared fields, plus an
// "id: ID!" field resolving to the global id, plus one connection field per declared relation.
// The type implements the registry's Node interface and is recorded in the registry so NodeField
// can refetch its instances.
func NewNodeType(def NodeDefinition, registry *Registry) (graphql.Object, error) {
	typeName := def.TypeName()
	if typeName == "" {
		return nil, &InvalidArgumentError{Message: "node definition must have a type name"}
	}

	fields := graphql.Fields{}
	for name, field := range def.Fields() {
		fields[name] = field
	}

	fields["id"] = graphql.FieldConfig{
		Type:        graphql.NonNullOfType(graphql.ID()),
		Description: "The globally unique identifier of the object.",
		Resolver: graphql.FieldResolverFunc(func(
			ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			id, err := resolveIdentifier(def, source)
			if err != nil {
				return nil, err
			}
			return globalid.Encode(globalIDTypeName(typeName), id), nil
		}),
	}

	if provider, ok := def.(ConnectionsProvider); ok {
		for name, config := range provider.Connections() {
			field, err := NewConnectionField(name, config, registry)
			if err != nil {
				return nil, err
			}
			fields[name] = field
		}
	}

	object, err := graphql.NewObject(&graphql.ObjectConfig{
		Name: typeName,
		Interfaces: []graphql.InterfaceTypeDefinition{
			graphql.I(registry.Node()),
		},
		Fields: fields,
	})
	if err != nil {
		return nil, err
	}

	registry.registerNode(def, object)
	return object, nil
}

// MustNewNodeType is a convenience version of NewNodeType that panics on error.
func MustNewNodeType(def NodeDefinition, registry *Registry) graphql.Object {
	object, err := NewNodeType(def, registry)
	if err != nil {
		panic(err)
	}
	return object
}

// NodeField builds the root "node(id: ID!)" field that refetches any registered object from its
// global id. The refetched item is tagged with its concrete type name (TypeNameField) so the Node
// interface can resolve its object type.
func NodeField(registry *Registry) graphql.FieldConfig {
	return graphql.FieldConfig{
		Type:        graphql.T(registry.Node()),
		Description: "Fetches an object given its globally unique identifier.",
		Args: graphql.ArgumentConfigMap{
			"id": {
				Type:        graphql.NonNullOfType(graphql.ID()),
				Description: "The globally unique identifier of the object to fetch.",
			},
		},
		Resolver: graphql.FieldResolverFunc(func(
			ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			value := info.Args().Get("id")
			token, ok := value.(string)
			if !ok {
				return nil, &globalid.MalformedIdentifierError{Token: fmt.Sprint(value)}
			}

			typeName, id, err := globalid.DecodeTypeAndID(token)
			if err != nil {
				return nil, err
			}

			node := registry.nodeFor(typeName)
			if node == nil {
				return nil, &NotFoundError{TypeName: typeName, ID: id}
			}

			resolved, err := node.definition.ResolveByID(ctx, id)
			if err != nil || resolved == nil {
				return nil, err
			}

			if item, ok := resolved.(Item); ok {
				item.SetField(TypeNameField, node.definition.TypeName())
			}
			return resolved, nil
		}),
	}
}

// resolveIdentifier reads the raw identifier for a source object, honoring a definition's
// override.
func resolveIdentifier(def NodeDefinition, source interface{}) (string, error) {
	if resolver, ok := def.(IdentifierResolver); ok {
		return resolver.Identifier(source)
	}
	return identifierOf(source)
}

// globalIDTypeName lowercases the first letter of an object type name to form the type name
// component encoded into global ids.
func globalIDTypeName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return typeName
	}
	return string(unicode.ToLower(r)) + typeName[size:]
}
