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

	"github.com/botobag/relay/globalid"
)

// CursorField is the item field that carries the cursor injected by pagination. The default edge
// cursor resolution reads it back.
const CursorField = "relayCursor"

// cursorTypeName is the type component encoded into every cursor token.
const cursorTypeName = "arrayconnection"

// Page is one window over a collection. It backs a connection value for exactly one resolver
// invocation; the edges and pageInfo sub-resolvers read it and it is never retained beyond the
// request.
type Page struct {
	// Items in the window, in collection order. Pagination injects a cursor into each of them.
	Items []Item

	// Total number of items in the full collection, counted before slicing.
	Total int

	// First is the requested page size, or the collection size when no size was requested.
	First int

	// Current is the 1-based page number reconstructed from the offset cursor.
	Current int
}

// PaginationArguments are the client-supplied windowing arguments of a connection field.
type PaginationArguments struct {
	// First is the maximum number of items to return. Meaningful only when HasFirst is true.
	First int

	// HasFirst records whether "first" was supplied at all; its absence requests the whole
	// collection.
	HasFirst bool

	// After is the opaque cursor to resume from; empty means the beginning.
	After string
}

// ParsePaginationArguments reads "first" and "after" out of a field's coerced argument values.
// Negative or non-integer "first" values fail with *InvalidArgumentError.
func ParsePaginationArguments(args graphql.ArgumentValues) (PaginationArguments, error) {
	var parsed PaginationArguments

	if value, ok := args.Lookup("first"); ok && value != nil {
		first, ok := intValue(value)
		if !ok {
			return parsed, &InvalidArgumentError{
				Message: fmt.Sprintf(`"first" must be an integer (got %T)`, value),
			}
		}
		if first < 0 {
			return parsed, &InvalidArgumentError{Message: `"first" must not be negative`}
		}
		parsed.First = first
		parsed.HasFirst = true
	}

	if value, ok := args.Lookup("after"); ok && value != nil {
		after, ok := value.(string)
		if !ok {
			return parsed, &InvalidArgumentError{
				Message: fmt.Sprintf(`"after" must be a string (got %T)`, value),
			}
		}
		parsed.After = after
	}

	return parsed, nil
}

// intValue accepts the integer representations an argument value may arrive in.
func intValue(value interface{}) (int, bool) {
	switch value := value.(type) {
	case int:
		return value, true
	case int32:
		return int(value), true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	}
	return 0, false
}

// Paginate windows a collection according to the pagination arguments.
//
// Without "first" the whole collection is returned as a single page (no pagination requested, no
// truncation). With "first", the offset is extracted from the "after" cursor (absent cursor means
// offset 0), the window is clamped to the collection bounds, and the 1-based page number is
// reconstructed as (first+offset)/first when both are nonzero.
//
// The page number reconstruction, like the cursor values InjectCursors derives from it, assumes
// the client pages through a stable, append-only collection with a constant "first" stride. Use a
// CursorInjector/CursorResolver pair on the connection to switch to absolute-offset cursors when
// that assumption does not hold.
func Paginate(collection []Item, args PaginationArguments) (*Page, error) {
	total := len(collection)

	if !args.HasFirst {
		return &Page{
			Items:   collection,
			Total:   total,
			First:   total,
			Current: 1,
		}, nil
	}

	first := args.First
	if first < 0 {
		return nil, &InvalidArgumentError{Message: `"first" must not be negative`}
	}

	offset := globalid.CursorID(args.After)
	if offset < 0 {
		return nil, &InvalidArgumentError{Message: `"after" must not decode to a negative offset`}
	}

	current := 1
	if first > 0 && offset > 0 {
		current = (first + offset) / first
	}

	begin := offset
	if begin > total {
		begin = total
	}
	end := begin + first
	if end > total {
		end = total
	}

	return &Page{
		Items:   collection[begin:end],
		Total:   total,
		First:   first,
		Current: current,
	}, nil
}

// CursorInjector assigns a cursor to every item of a freshly windowed page. A ConnectionConfig
// may supply one to replace the default rule.
type CursorInjector interface {
	Inject(page *Page)
}

// CursorInjectorFunc is an adapter to allow the use of ordinary functions as CursorInjector.
type CursorInjectorFunc func(page *Page)

// Inject calls f(page).
func (f CursorInjectorFunc) Inject(page *Page) {
	f(page)
}

// CursorInjectorFunc implements CursorInjector.
var _ CursorInjector = CursorInjectorFunc(nil)

// InjectCursors applies the default cursor rule: the item at 0-based position x within the window
// receives the token for (x+1)*Current. Injection is idempotent; re-running it rewrites the same
// values.
func InjectCursors(page *Page) {
	for x, item := range page.Items {
		item.SetField(CursorField, globalid.EncodeInt(cursorTypeName, (x+1)*page.Current))
	}
}

// CursorResolver resolves the cursor of a single edge. A ConnectionConfig may supply one to
// replace the default resolution, which returns the value injected into the item's CursorField.
type CursorResolver interface {
	ResolveCursor(ctx context.Context, item Item, info graphql.ResolveInfo) (string, error)
}

// CursorResolverFunc is an adapter to allow the use of ordinary functions as CursorResolver.
type CursorResolverFunc func(ctx context.Context, item Item, info graphql.ResolveInfo) (string, error)

// ResolveCursor calls f(ctx, item, info).
func (f CursorResolverFunc) ResolveCursor(
	ctx context.Context, item Item, info graphql.ResolveInfo) (string, error) {
	return f(ctx, item, info)
}

// CursorResolverFunc implements CursorResolver.
var _ CursorResolver = CursorResolverFunc(nil)

// defaultCursor returns the injected cursor of an item. An item that never went through injection
// (e.g., produced by a custom edges resolver that skips it) resolves to the empty string rather
// than an undefined value.
func defaultCursor(item Item) string {
	value, ok := item.Field(CursorField)
	if !ok {
		return ""
	}
	cursor, ok := value.(string)
	if !ok {
		return ""
	}
	return cursor
}
