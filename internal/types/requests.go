package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNoData is returned when a request body is absent, not a JSON object, or
// an empty object.
var ErrNoData = errors.New("no data provided")

// Field is a loosely typed JSON value. Browser forms post numbers as strings,
// so age and weight accept any scalar and are judged by truthiness.
type Field struct {
	value any
}

// NewField wraps v as a Field. Intended for tests and programmatic callers.
func NewField(v any) Field {
	return Field{value: v}
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid field value: %w", err)
	}
	f.value = v
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

// Truthy reports whether the value counts as provided: null, false, zero,
// empty strings and empty collections do not.
func (f Field) Truthy() bool {
	switch v := f.value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// IsNull reports whether the value was absent or JSON null.
func (f Field) IsNull() bool {
	return f.value == nil
}

// Text returns the value when it is a JSON string.
func (f Field) Text() (string, bool) {
	s, ok := f.value.(string)
	return s, ok
}

// String renders the value the way it is embedded in a prompt.
func (f Field) String() string {
	switch v := f.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// DietRequest is the body of POST /api/diet.
type DietRequest struct {
	Age      Field   `json:"age"`
	Weight   Field   `json:"weight"`
	History  Field   `json:"history"`
	DietType Field `json:"dietType"`
}

// DecodeDietRequest parses a request body. Anything that is not a non-empty
// JSON object yields ErrNoData.
func DecodeDietRequest(data []byte) (*DietRequest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoData
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	var req DietRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	return &req, nil
}

// DietPlanResponse is returned when a plan passes the compliance screen.
type DietPlanResponse struct {
	Plan string `json:"plan"`
}

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
