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
)

// ConnectionConfig declares one relation from a node type to a list of related items. Declared
// once per relation; the synthesized types are built at schema-construction time and shared across
// requests.
type ConnectionConfig struct {
	// Type is the element type of the relation. A list type is unwrapped to its element type before
	// the edge and connection wrappers are built, so wrapping never produces a list of lists.
	Type graphql.TypeDefinition

	// Resolver overrides the default "edges" resolver. The default returns the items of the page
	// materialized by the connection field, cursors already injected; an override that builds its
	// own edge values is responsible for their cursors.
	Resolver graphql.FieldResolver

	// CursorInjector overrides the default cursor-injection rule applied to the windowed page.
	CursorInjector CursorInjector

	// CursorResolver overrides the per-edge cursor resolution.
	CursorResolver CursorResolver
}

// Connections maps relation names to their configurations.
type Connections map[string]ConnectionConfig

// NewConnectionField synthesizes the paginated field for the named relation: a
// <Name>Connection object wrapping a list of <Name>Edge, with "first"/"after" arguments. The
// field's resolver windows the collection read from the parent source's field of the same name
// (or a *Page the source already carries) into a Page that backs the edges and pageInfo
// sub-resolvers.
func NewConnectionField(
	name string, config ConnectionConfig, registry *Registry) (graphql.FieldConfig, error) {
	if name == "" {
		return graphql.FieldConfig{}, &InvalidArgumentError{Message: "connection must have a name"}
	}
	if config.Type == nil {
		return graphql.FieldConfig{}, &InvalidArgumentError{
			Message: fmt.Sprintf(`connection "%s" must specify an element type`, name),
		}
	}

	elementType, err := graphql.NewType(config.Type)
	if err != nil {
		return graphql.FieldConfig{}, err
	}
	if listType, ok := elementType.(graphql.List); ok {
		elementType = listType.ElementType()
	}

	edgeType, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:        capitalize(name) + "Edge",
		Description: "An edge in a connection.",
		Fields: graphql.Fields{
			"node": {
				Type:        graphql.T(elementType),
				Description: "The item at the end of the edge.",
				Resolver:    graphql.FieldResolverFunc(resolveEdgeNode),
			},
			"cursor": {
				Type:        graphql.NonNullOfType(graphql.String()),
				Description: "A cursor for use in pagination.",
				Resolver:    newEdgeCursorResolver(config.CursorResolver),
			},
		},
	})
	if err != nil {
		return graphql.FieldConfig{}, err
	}

	connectionType, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:        capitalize(name) + "Connection",
		Description: "A connection to a list of items.",
		Fields: graphql.Fields{
			"edges": {
				Type:        graphql.ListOfType(edgeType),
				Description: "A list of edges.",
				Resolver:    newEdgesResolver(config.Resolver),
			},
			"pageInfo": {
				Type:        graphql.NonNullOfType(registry.PageInfo()),
				Description: "Information to aid in pagination.",
				Resolver:    graphql.FieldResolverFunc(resolveConnectionPageInfo),
			},
		},
	})
	if err != nil {
		return graphql.FieldConfig{}, err
	}

	return graphql.FieldConfig{
		Type:        graphql.T(connectionType),
		Description: fmt.Sprintf(`The connection to the "%s" of the object.`, name),
		Args: graphql.ArgumentConfigMap{
			"first": {
				Description: "Returns up to the first n items of the list.",
				Type:        graphql.T(graphql.Int()),
			},
			"after": {
				Description: "Returns the items that come after the given cursor.",
				Type:        graphql.T(graphql.String()),
			},
		},
		Resolver: graphql.FieldResolverFunc(func(
			ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
			return resolveConnection(name, &config, source, info)
		}),
	}, nil
}

// MustNewConnectionField is a convenience version of NewConnectionField that panics on error.
func MustNewConnectionField(
	name string, config ConnectionConfig, registry *Registry) graphql.FieldConfig {
	field, err := NewConnectionField(name, config, registry)
	if err != nil {
		panic(err)
	}
	return field
}

// resolveConnection materializes the Page backing one connection value for one request.
func resolveConnection(
	name string,
	config *ConnectionConfig,
	source interface{},
	info graphql.ResolveInfo) (interface{}, error) {

	args, err := ParsePaginationArguments(info.Args())
	if err != nil {
		return nil, err
	}

	// A collection that already arrives as a *Page skips slicing but still receives cursors.
	collection := collectionOf(name, source)
	page, ok := collection.(*Page)
	if !ok {
		items, err := Items(collection)
		if err != nil {
			return nil, err
		}
		if page, err = Paginate(items, args); err != nil {
			return nil, err
		}
	}

	if config.CursorInjector != nil {
		config.CursorInjector.Inject(page)
	} else {
		InjectCursors(page)
	}
	return page, nil
}

// collectionOf reads the raw collection for the named relation off the parent source value.
func collectionOf(name string, source interface{}) interface{} {
	if item, ok := source.(Item); ok {
		if value, ok := item.Field(name); ok {
			return value
		}
	}
	return nil
}

// resolveEdgeNode is the "node" resolver: the edge's backing value is the node.
func resolveEdgeNode(
	ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return source, nil
}

// newEdgeCursorResolver builds the "cursor" resolver, deferring to the per-relation override when
// one was configured.
func newEdgeCursorResolver(custom CursorResolver) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(
		ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		item, ok := source.(Item)
		if !ok {
			// An edge value that is not an Item never went through injection; its cursor is defined
			// to be empty rather than an error.
			return "", nil
		}
		if custom != nil {
			return custom.ResolveCursor(ctx, item, info)
		}
		return defaultCursor(item), nil
	})
}

// newEdgesResolver builds the "edges" resolver, deferring to the per-relation override when one
// was configured.
func newEdgesResolver(override graphql.FieldResolver) graphql.FieldResolver {
	if override != nil {
		return override
	}
	return graphql.FieldResolverFunc(func(
		ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		page, err := pageOf(source)
		if err != nil {
			return nil, err
		}

		edges := make([]interface{}, len(page.Items))
		for i, item := range page.Items {
			edges[i] = item
		}
		return edges, nil
	})
}

// resolveConnectionPageInfo hands the whole Page to the PageInfo type, which reads the boundary
// fields off it.
func resolveConnectionPageInfo(
	ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	return pageOf(source)
}

// pageOf asserts the connection source value materialized by resolveConnection.
func pageOf(source interface{}) (*Page, error) {
	page, ok := source.(*Page)
	if !ok {
		return nil, graphql.NewError(
			fmt.Sprintf("expected a connection page as source value (got %T)", source))
	}
	return page, nil
}

// capitalize upper-cases the first rune of a relation name to form the synthesized type names.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
