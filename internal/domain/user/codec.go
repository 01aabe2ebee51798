package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	apperrors "raw-user-service/pkg/errors"
)

// payload mirrors User with pointer fields so that absent keys can be told
// apart from empty strings.
type payload struct {
	ID    *int32
	Name  *string `validate:"required"`
	Email *string `validate:"required"`
}

var validate = validator.New()

// Decode parses a JSON object into a User. The id is optional, name and
// email must be present as strings (empty strings are accepted). Keys match
// exactly: "NAME" is not "name", and a key may appear only once.
func Decode(data []byte) (*User, error) {
	fields, err := objectFields(data)
	if err != nil {
		return nil, err
	}

	var p payload
	targets := map[string]any{"id": &p.ID, "name": &p.Name, "email": &p.Email}
	for key, target := range targets {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, apperrors.NewDecodeError(fmt.Sprintf("invalid value for %q", key), err)
		}
	}

	if err := validate.Struct(p); err != nil {
		return nil, apperrors.NewDecodeError("missing required field", err)
	}

	return &User{
		ID:    p.ID,
		Name:  *p.Name,
		Email: *p.Email,
	}, nil
}

// objectFields splits a single top-level JSON object into its raw values by
// key. Anything after the closing brace is rejected.
func objectFields(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, apperrors.NewDecodeError("malformed user payload", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, apperrors.NewDecodeError("user payload must be a JSON object", nil)
	}

	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, apperrors.NewDecodeError("malformed user payload", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, apperrors.NewDecodeError("malformed user payload", nil)
		}
		if _, dup := fields[key]; dup {
			return nil, apperrors.NewDecodeError(fmt.Sprintf("duplicate field %q", key), nil)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, apperrors.NewDecodeError("malformed user payload", err)
		}
		fields[key] = raw
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, apperrors.NewDecodeError("malformed user payload", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperrors.NewDecodeError("trailing data after user payload", err)
	}

	return fields, nil
}

// Encode renders a single user as JSON.
func Encode(u User) ([]byte, error) {
	return json.Marshal(u)
}

// EncodeList renders users as a JSON array; nil renders as [].
func EncodeList(users []User) ([]byte, error) {
	if users == nil {
		users = []User{}
	}
	return json.Marshal(users)
}
