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

import "fmt"

// NotFoundError indicates that no object exists for a given raw id. A NodeDefinition may return it
// from ResolveByID to surface a field error; returning (nil, nil) instead resolves the node to
// null. NodeField returns it when a global id names a type that was never registered.
type NotFoundError struct {
	// TypeName of the object that was looked up; may be empty when unknown.
	TypeName string

	// ID is the raw id that failed to resolve.
	ID string
}

// Error implements Go's error interface.
func (e *NotFoundError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf(`no object with id "%s"`, e.ID)
	}
	return fmt.Sprintf(`no "%s" object with id "%s"`, e.TypeName, e.ID)
}

// InvalidArgumentError indicates that a pagination argument or a connection source value is
// unusable (e.g., a negative "first", or a collection that is not a list of items). It surfaces as
// a field error; the rest of the request still resolves.
type InvalidArgumentError struct {
	Message string
}

// Error implements Go's error interface.
func (e *InvalidArgumentError) Error() string {
	return e.Message
}
