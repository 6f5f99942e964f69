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

// Package globalid implements the opaque identifier scheme used for both node identification and
// pagination cursors: a (type name, raw id) pair reversibly packed into a single token.
//
// The encoding is a pure, deterministic transform with no external dependency: the two components
// are joined with a fixed separator and the result is base64-encoded. It is an obfuscation, not a
// security measure; tokens carry no integrity signature and no expiry.
package globalid

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// separator joins the type name and the raw id inside a token. The type name must not contain it;
// the raw id may (only the first occurrence splits).
const separator = ":"

// MalformedIdentifierError is returned when a token cannot be decoded, either because it is not
// valid base64 or because the decoded payload lacks the separator. Tokens arrive from untrusted
// client input, so callers must handle this error explicitly.
type MalformedIdentifierError struct {
	// Token is the offending input.
	Token string
}

// Error implements Go's error interface.
func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf(`malformed global identifier "%s"`, e.Token)
}

// Encode packs a type name and a raw id into an opaque token. The same input always yields the
// same token.
func Encode(typeName string, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + separator + id))
}

// EncodeInt is Encode for integer raw ids. It is the variant used for pagination cursors.
func EncodeInt(typeName string, id int) string {
	return Encode(typeName, strconv.Itoa(id))
}

// DecodeTypeAndID unpacks a token into its type name and raw id components. A token that fails to
// decode yields a *MalformedIdentifierError.
func DecodeTypeAndID(token string) (typeName string, id string, err error) {
	decoded, decodeErr := base64.StdEncoding.DecodeString(token)
	if decodeErr != nil {
		return "", "", &MalformedIdentifierError{Token: token}
	}

	components := strings.SplitN(string(decoded), separator, 2)
	if len(components) != 2 {
		return "", "", &MalformedIdentifierError{Token: token}
	}
	return components[0], components[1], nil
}

// Decode unpacks a token and returns only its raw id component.
func Decode(token string) (string, error) {
	_, id, err := DecodeTypeAndID(token)
	return id, err
}

// CursorID extracts the integer raw id carried by a cursor token. An empty token decodes to offset
// 0 (no cursor supplied). A malformed token or a non-numeric payload also yields 0; this fallback
// is deliberate so that a garbage cursor degrades to "start from the beginning" instead of failing
// the field. Callers that want strict behavior should use DecodeTypeAndID and parse the raw id
// themselves.
func CursorID(token string) int {
	if token == "" {
		return 0
	}

	id, err := Decode(token)
	if err != nil {
		return 0
	}

	value, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return value
}
