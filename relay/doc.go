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

// Package relay adds Relay-style connections and global object identification on top of an artemis
// GraphQL schema.
//
// A NodeDefinition describes a concrete object type: its plain fields, how to load an instance
// from a raw id, and optionally its connections to related lists. NewNodeType turns a definition
// into an artemis Object that carries a synthesized "id: ID!" field, implements the shared Node
// interface, and exposes one paginated connection field per declared relation. The Registry owns
// the types shared across definitions (the Node interface and the PageInfo object) and resolves
// registered types by name; NodeField builds the root "node(id: ID!)" field that refetches any
// registered object from its global id.
//
// Connection fields accept "first" and "after" arguments. Their resolvers window an
// already-materialized in-memory collection into a Page; edges pair each item with an opaque
// cursor produced by the globalid codec. All per-request values (Page, edges) are owned by a
// single resolver invocation, so synthesized types are safe for concurrent use once built.
package relay
