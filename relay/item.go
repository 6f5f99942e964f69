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
	"strconv"

	"github.com/botobag/artemis/graphql"
)

// Item is a single record in a collection handed to a connection resolver. It gives the library
// named access to loosely-structured source objects without resorting to reflection; pagination
// uses SetField to attach the cursor to each item in a window.
type Item interface {
	// Field returns the named field value. ok is false when the item has no such field.
	Field(name string) (value interface{}, ok bool)

	// SetField stores value under name, replacing any previous value.
	SetField(name string, value interface{})
}

// MapItem is the stock Item implementation backed by a plain map.
type MapItem map[string]interface{}

var _ Item = (MapItem)(nil)

// Field implements Item.
func (item MapItem) Field(name string) (interface{}, bool) {
	value, ok := item[name]
	return value, ok
}

// SetField implements Item.
func (item MapItem) SetField(name string, value interface{}) {
	item[name] = value
}

// Items coerces a collection value returned from an application resolver into a list of Item. It
// accepts the common shapes a resolver produces; anything else yields an *InvalidArgumentError. A
// nil value coerces to an empty collection.
func Items(value interface{}) ([]Item, error) {
	switch collection := value.(type) {
	case nil:
		return nil, nil

	case []Item:
		return collection, nil

	case []MapItem:
		items := make([]Item, len(collection))
		for i, item := range collection {
			items[i] = item
		}
		return items, nil

	case []map[string]interface{}:
		items := make([]Item, len(collection))
		for i, item := range collection {
			items[i] = MapItem(item)
		}
		return items, nil

	case []interface{}:
		items := make([]Item, len(collection))
		for i, element := range collection {
			switch item := element.(type) {
			case Item:
				items[i] = item
			case map[string]interface{}:
				items[i] = MapItem(item)
			default:
				return nil, &InvalidArgumentError{
					Message: fmt.Sprintf("collection element at index %d is not an item (got %T)", i, element),
				}
			}
		}
		return items, nil

	default:
		return nil, &InvalidArgumentError{
			Message: fmt.Sprintf("connection source must be a list of items (got %T)", value),
		}
	}
}

// FieldValue returns a resolver that reads the named field off an Item source. It is the
// counterpart of the executor's reflection-based default resolver for types whose sources are
// Items; a missing field resolves to null.
func FieldValue(name string) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(
		ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		item, ok := source.(Item)
		if !ok {
			return nil, graphql.NewError(
				fmt.Sprintf(`cannot read field "%s" from source of type %T`, name, source))
		}
		value, _ := item.Field(name)
		return value, nil
	})
}

// identifierOf reads the default primary identifier off a source object: the value of its "id"
// field, formatted as a string.
func identifierOf(source interface{}) (string, error) {
	item, ok := source.(Item)
	if !ok {
		return "", fmt.Errorf("cannot read identifier from source of type %T", source)
	}

	value, ok := item.Field("id")
	if !ok {
		return "", fmt.Errorf(`source item has no "id" field`)
	}
	return formatID(value)
}

// formatID renders an identifier value as the string form carried inside a global id token.
func formatID(value interface{}) (string, error) {
	switch id := value.(type) {
	case string:
		return id, nil
	case int:
		return strconv.Itoa(id), nil
	case int32:
		return strconv.FormatInt(int64(id), 10), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	case fmt.Stringer:
		return id.String(), nil
	default:
		return "", fmt.Errorf("unsupported identifier type %T", value)
	}
}
