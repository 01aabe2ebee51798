// Package request pulls the identifier and body out of a raw request buffer.
// These are textual slices, not a URL or HTTP parser.
package request

import (
	"strconv"
	"strings"

	apperrors "raw-user-service/pkg/errors"
)

// bodySeparator is the blank line between the request head and the body
const bodySeparator = "\r\n\r\n"

// ExtractID returns the third "/"-separated segment of the request up to the
// first whitespace, e.g. "5" for "GET /users/5 HTTP/1.1". It returns "" when
// the request has fewer segments.
func ExtractID(raw string) string {
	segments := strings.SplitN(raw, "/", 4)
	if len(segments) < 3 {
		return ""
	}

	fields := strings.Fields(segments[2])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ExtractBody returns everything after the last blank line, or "" when the
// request has none.
func ExtractBody(raw string) string {
	idx := strings.LastIndex(raw, bodySeparator)
	if idx < 0 {
		return ""
	}
	return raw[idx+len(bodySeparator):]
}

// ParseID parses a base-10 32-bit identifier.
func ParseID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, apperrors.NewInvalidIDError(s, err)
	}
	return int32(id), nil
}
