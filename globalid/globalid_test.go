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

package globalid_test

import (
	"encoding/base64"

	"github.com/botobag/relay/globalid"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Encode", func() {
	It("round-trips a (type name, raw id) pair", func() {
		token := globalid.Encode("user", "42")

		typeName, id, err := globalid.DecodeTypeAndID(token)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(typeName).Should(Equal("user"))
		Expect(id).Should(Equal("42"))

		id, err = globalid.Decode(token)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(id).Should(Equal("42"))
	})

	It("is deterministic", func() {
		Expect(globalid.Encode("user", "42")).Should(Equal(globalid.Encode("user", "42")))
		Expect(globalid.EncodeInt("arrayconnection", 7)).Should(
			Equal(globalid.EncodeInt("arrayconnection", 7)))
	})

	It("produces distinct tokens for distinct inputs", func() {
		Expect(globalid.Encode("user", "42")).ShouldNot(Equal(globalid.Encode("user", "43")))
		Expect(globalid.Encode("user", "42")).ShouldNot(Equal(globalid.Encode("todo", "42")))
	})

	It("preserves raw ids that contain the separator", func() {
		typeName, id, err := globalid.DecodeTypeAndID(globalid.Encode("user", "a:b:c"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(typeName).Should(Equal("user"))
		Expect(id).Should(Equal("a:b:c"))
	})

	It("round-trips integer raw ids", func() {
		id, err := globalid.Decode(globalid.EncodeInt("arrayconnection", 6))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(id).Should(Equal("6"))
	})
})

var _ = Describe("Decode", func() {
	It("rejects a token that is not valid base64", func() {
		_, err := globalid.Decode("not-base64!!!")
		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(&globalid.MalformedIdentifierError{}))
		Expect(err.Error()).Should(ContainSubstring("not-base64!!!"))
	})

	It("rejects a decoded payload without separator", func() {
		token := base64.StdEncoding.EncodeToString([]byte("justonecomponent"))
		_, _, err := globalid.DecodeTypeAndID(token)
		Expect(err).Should(BeAssignableToTypeOf(&globalid.MalformedIdentifierError{}))
	})

	It("rejects the empty token", func() {
		_, err := globalid.Decode("")
		Expect(err).Should(BeAssignableToTypeOf(&globalid.MalformedIdentifierError{}))
	})
})

var _ = Describe("CursorID", func() {
	It("extracts the integer raw id from a cursor token", func() {
		Expect(globalid.CursorID(globalid.EncodeInt("arrayconnection", 4))).Should(Equal(4))
	})

	It("treats an absent cursor as offset 0", func() {
		Expect(globalid.CursorID("")).Should(Equal(0))
	})

	It("falls back to 0 for a non-numeric payload", func() {
		Expect(globalid.CursorID(globalid.Encode("arrayconnection", "abc"))).Should(Equal(0))
	})

	It("falls back to 0 for a malformed token", func() {
		Expect(globalid.CursorID("not-base64!!!")).Should(Equal(0))
	})
})
