package peliculas

import (
	"encoding/json"
	"strings"
)

const bodyTypeMsg = "El campo 'body' debe ser dict o string JSON."

// ParseEventBody resolves the request body out of an invocation envelope.
// Three forms are accepted, in priority order: a "body" key holding an
// object, a "body" key holding a JSON-encoded string (blank means empty
// object), or the event itself carrying the fields at top level. Events
// that are not JSON objects resolve to an empty body.
func ParseEventBody(event []byte) (map[string]any, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(event, &outer); err != nil {
		return map[string]any{}, nil
	}

	raw, ok := outer["body"]
	if !ok {
		var body map[string]any
		if err := json.Unmarshal(event, &body); err != nil || body == nil {
			return map[string]any{}, nil
		}
		return body, nil
	}

	switch raw[0] {
	case '{':
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, WrapError(ErrValidation, err.Error(), err)
		}
		return body, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, WrapError(ErrValidation, err.Error(), err)
		}
		if strings.TrimSpace(s) == "" {
			return map[string]any{}, nil
		}

		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, WrapError(ErrValidation, err.Error(), err)
		}
		body, ok := v.(map[string]any)
		if !ok {
			return nil, NewError(ErrValidation, bodyTypeMsg)
		}
		return body, nil
	default:
		return nil, NewError(ErrValidation, bodyTypeMsg)
	}
}
