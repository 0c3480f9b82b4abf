package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// envelopeKeys are the metadata fields that may sit next to "data".
var envelopeKeys = []string{"code", "status", "message", "success"}

// decodeTree parses body keeping numbers exact.
func decodeTree(body []byte) (any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return v, nil
}

// unwrapEnvelope returns the "data" member of a {code,status,message,data}
// envelope, or v itself when it is a bare payload.
func unwrapEnvelope(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	data, ok := m["data"]
	if !ok {
		return v
	}
	for _, k := range envelopeKeys {
		if _, ok := m[k]; ok {
			return data
		}
	}
	return v
}

// normalizeKeys rewrites object keys to snake_case at every depth. When a
// payload carries both spellings of a key the snake_case one wins.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if sk := strcase.ToSnake(k); sk != k {
				out[sk] = normalizeKeys(val)
			}
		}
		for k, val := range t {
			if strcase.ToSnake(k) == k {
				out[k] = normalizeKeys(val)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeKeys(val)
		}
		return out
	default:
		return v
	}
}

// decodePayload unwraps, normalises and decodes body into out.
func decodePayload(body []byte, out any) error {
	if out == nil {
		return nil
	}
	tree, err := decodeTree(body)
	if err != nil {
		return err
	}
	tree = normalizeKeys(unwrapEnvelope(tree))
	if tree == nil {
		return nil
	}

	b, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// parseErrorBody pulls a human message and per-field errors out of an error
// response. Both {"message": ...} and {"error": ...} bodies are understood;
// a non-JSON body is used as the message verbatim.
func parseErrorBody(body []byte) (string, map[string][]string) {
	tree, err := decodeTree(body)
	if err != nil {
		return strings.TrimSpace(string(body)), nil
	}
	m, ok := normalizeKeys(tree).(map[string]any)
	if !ok {
		return "", nil
	}

	var msg string
	for _, k := range []string{"message", "error", "detail"} {
		if s, ok := m[k].(string); ok && s != "" {
			msg = s
			break
		}
	}

	var fields map[string][]string
	if raw, ok := m["errors"].(map[string]any); ok {
		fields = make(map[string][]string, len(raw))
		for k, v := range raw {
			switch t := v.(type) {
			case string:
				fields[k] = []string{t}
			case []any:
				for _, item := range t {
					if s, ok := item.(string); ok {
						fields[k] = append(fields[k], s)
					}
				}
			}
		}
	}
	return msg, fields
}
