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

package relay_test

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/botobag/artemis/graphql"

	"github.com/botobag/relay/globalid"
	"github.com/botobag/relay/relay"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// cursor builds the token the default injection assigns for a cursor value.
func cursor(value int) string {
	return globalid.EncodeInt("arrayconnection", value)
}

var _ = Describe("Connection", func() {
	Describe("executing queries", func() {
		var ts *testSchema

		BeforeEach(func() {
			ts = newTestSchema(nil)
		})

		It("returns the whole collection when no arguments are given", func() {
			Eventually(execute(ts.schema, `
				{
					viewer {
						todos {
							edges { node { text } cursor }
							pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
						}
					}
				}`)).Should(MatchResultInJSON(fmt.Sprintf(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "node": { "text": "todo-10" }, "cursor": %q },
								{ "node": { "text": "todo-20" }, "cursor": %q },
								{ "node": { "text": "todo-30" }, "cursor": %q },
								{ "node": { "text": "todo-40" }, "cursor": %q },
								{ "node": { "text": "todo-50" }, "cursor": %q }
							],
							"pageInfo": {
								"hasNextPage": false,
								"hasPreviousPage": false,
								"startCursor": %q,
								"endCursor": %q
							}
						}
					}
				}
			}`, cursor(1), cursor(2), cursor(3), cursor(4), cursor(5), cursor(1), cursor(5))))
		})

		It("windows the first items and exposes global node ids", func() {
			Eventually(execute(ts.schema, `
				{
					viewer {
						todos(first: 2) {
							edges { node { id text } cursor }
							pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
						}
					}
				}`)).Should(MatchResultInJSON(fmt.Sprintf(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "node": { "id": %q, "text": "todo-10" }, "cursor": %q },
								{ "node": { "id": %q, "text": "todo-20" }, "cursor": %q }
							],
							"pageInfo": {
								"hasNextPage": true,
								"hasPreviousPage": false,
								"startCursor": %q,
								"endCursor": %q
							}
						}
					}
				}
			}`,
				globalid.Encode("todo", "10"), cursor(1),
				globalid.Encode("todo", "20"), cursor(2),
				cursor(1), cursor(2))))
		})

		It("resumes from the cursor of the previous page", func() {
			Eventually(execute(ts.schema, fmt.Sprintf(`
				{
					viewer {
						todos(first: 2, after: %q) {
							edges { node { text } cursor }
							pageInfo { hasNextPage hasPreviousPage startCursor endCursor }
						}
					}
				}`, cursor(2)))).Should(MatchResultInJSON(fmt.Sprintf(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "node": { "text": "todo-30" }, "cursor": %q },
								{ "node": { "text": "todo-40" }, "cursor": %q }
							],
							"pageInfo": {
								"hasNextPage": true,
								"hasPreviousPage": true,
								"startCursor": %q,
								"endCursor": %q
							}
						}
					}
				}
			}`, cursor(2), cursor(4), cursor(2), cursor(4))))
		})

		It("returns an empty window for a zero page size", func() {
			Eventually(execute(ts.schema, `
				{
					viewer {
						todos(first: 0) {
							edges { node { text } cursor }
							pageInfo { hasPreviousPage startCursor endCursor }
						}
					}
				}`)).Should(MatchResultInJSON(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [],
							"pageInfo": {
								"hasPreviousPage": false,
								"startCursor": null,
								"endCursor": null
							}
						}
					}
				}
			}`))
		})

		It("fails the field for a negative page size", func() {
			result := executeWithErrors(ts.schema, `
				{
					viewer {
						todos(first: -1) {
							edges { node { text } }
						}
					}
				}`)

			resultJSON, err := json.Marshal(&result)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(resultJSON)).Should(ContainSubstring("must not be negative"))
		})
	})

	Describe("pre-windowed collections", func() {
		It("skips slicing but still injects cursors", func() {
			ts := newTestSchema(nil)
			ts.user["todos"] = &relay.Page{
				Items:   ts.todos[2:4],
				Total:   5,
				First:   2,
				Current: 2,
			}

			Eventually(execute(ts.schema, `
				{
					viewer {
						todos {
							edges { node { text } cursor }
							pageInfo { hasNextPage hasPreviousPage }
						}
					}
				}`)).Should(MatchResultInJSON(fmt.Sprintf(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "node": { "text": "todo-30" }, "cursor": %q },
								{ "node": { "text": "todo-40" }, "cursor": %q }
							],
							"pageInfo": {
								"hasNextPage": true,
								"hasPreviousPage": true
							}
						}
					}
				}
			}`, cursor(2), cursor(4))))
		})
	})

	Describe("per-relation overrides", func() {
		It("hands edge building to a custom edges resolver", func() {
			ts := newTestSchema(&relay.ConnectionConfig{
				Resolver: graphql.FieldResolverFunc(func(
					ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
					return []interface{}{
						relay.MapItem{"text": "handmade"},
					}, nil
				}),
			})

			// The custom resolver skipped cursor injection, so cursors resolve to the empty string.
			Eventually(execute(ts.schema, `
				{
					viewer {
						todos(first: 2) {
							edges { node { text } cursor }
						}
					}
				}`)).Should(MatchResultInJSON(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "node": { "text": "handmade" }, "cursor": "" }
							]
						}
					}
				}
			}`))
		})

		It("applies a custom cursor injection rule", func() {
			ts := newTestSchema(&relay.ConnectionConfig{
				CursorInjector: relay.CursorInjectorFunc(func(page *relay.Page) {
					for x, item := range page.Items {
						offset := (page.Current-1)*page.First + x + 1
						item.SetField(relay.CursorField, cursor(offset))
					}
				}),
			})

			Eventually(execute(ts.schema, fmt.Sprintf(`
				{
					viewer {
						todos(first: 2, after: %q) {
							edges { node { text } cursor }
						}
					}
				}`, cursor(2)))).Should(MatchResultInJSON(fmt.Sprintf(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "node": { "text": "todo-30" }, "cursor": %q },
								{ "node": { "text": "todo-40" }, "cursor": %q }
							]
						}
					}
				}
			}`, cursor(3), cursor(4))))
		})

		It("applies a custom per-edge cursor resolution", func() {
			ts := newTestSchema(&relay.ConnectionConfig{
				CursorResolver: relay.CursorResolverFunc(func(
					ctx context.Context, item relay.Item, info graphql.ResolveInfo) (string, error) {
					value, _ := item.Field("id")
					return globalid.EncodeInt("todoCursor", value.(int)), nil
				}),
			})

			Eventually(execute(ts.schema, `
				{
					viewer {
						todos(first: 2) {
							edges { cursor }
						}
					}
				}`)).Should(MatchResultInJSON(fmt.Sprintf(`{
				"data": {
					"viewer": {
						"todos": {
							"edges": [
								{ "cursor": %q },
								{ "cursor": %q }
							]
						}
					}
				}
			}`, globalid.EncodeInt("todoCursor", 10), globalid.EncodeInt("todoCursor", 20))))
		})
	})

	Describe("synthesized types", func() {
		var (
			registry *relay.Registry
			todoType graphql.Object
		)

		BeforeEach(func() {
			registry = relay.MustNewRegistry()
			todoType = relay.MustNewNodeType(&todoDefinition{}, registry)
		})

		// connectionTypeOf materializes the object type behind a connection field configuration.
		connectionTypeOf := func(field graphql.FieldConfig) graphql.Object {
			t, err := graphql.NewType(field.Type)
			Expect(err).ShouldNot(HaveOccurred())
			object, ok := t.(graphql.Object)
			Expect(ok).Should(BeTrue())
			return object
		}

		It("names the wrappers after the relation", func() {
			field := relay.MustNewConnectionField("todos", relay.ConnectionConfig{
				Type: graphql.T(todoType),
			}, registry)

			connectionType := connectionTypeOf(field)
			Expect(connectionType.Name()).Should(Equal("TodosConnection"))

			edgesType, ok := connectionType.Fields()["edges"].Type().(graphql.List)
			Expect(ok).Should(BeTrue())
			edgeType, ok := edgesType.ElementType().(graphql.Object)
			Expect(ok).Should(BeTrue())
			Expect(edgeType.Name()).Should(Equal("TodosEdge"))
			Expect(edgeType.Fields()["node"].Type()).Should(BeIdenticalTo(todoType))

			pageInfoType, ok := connectionType.Fields()["pageInfo"].Type().(graphql.NonNull)
			Expect(ok).Should(BeTrue())
			Expect(pageInfoType.InnerType()).Should(BeIdenticalTo(registry.PageInfo()))
		})

		It("accepts first and after arguments", func() {
			field := relay.MustNewConnectionField("todos", relay.ConnectionConfig{
				Type: graphql.T(todoType),
			}, registry)

			Expect(field.Args).Should(HaveKey("first"))
			Expect(field.Args).Should(HaveKey("after"))
		})

		It("unwraps a list element type instead of nesting lists", func() {
			field := relay.MustNewConnectionField("todos", relay.ConnectionConfig{
				Type: graphql.ListOfType(todoType),
			}, registry)

			connectionType := connectionTypeOf(field)
			edgesType, ok := connectionType.Fields()["edges"].Type().(graphql.List)
			Expect(ok).Should(BeTrue())
			edgeType, ok := edgesType.ElementType().(graphql.Object)
			Expect(ok).Should(BeTrue())
			Expect(edgeType.Fields()["node"].Type()).Should(BeIdenticalTo(todoType))
		})

		It("rejects a nameless relation and a missing element type", func() {
			_, err := relay.NewConnectionField("", relay.ConnectionConfig{
				Type: graphql.T(todoType),
			}, registry)
			Expect(err).Should(BeAssignableToTypeOf(&relay.InvalidArgumentError{}))

			_, err = relay.NewConnectionField("todos", relay.ConnectionConfig{}, registry)
			Expect(err).Should(BeAssignableToTypeOf(&relay.InvalidArgumentError{}))
		})
	})
})
