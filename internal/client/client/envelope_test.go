package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	type item struct {
		ID        string `json:"id"`
		ClassName string `json:"class_name"`
	}

	tests := []struct {
		name string
		body string
		want item
	}{
		{"bare snake", `{"id":"1","class_name":"Grade 1"}`, item{"1", "Grade 1"}},
		{"bare camel", `{"id":"1","className":"Grade 1"}`, item{"1", "Grade 1"}},
		{"envelope", `{"code":200,"status":"success","message":"ok","data":{"id":"1","className":"Grade 1"}}`, item{"1", "Grade 1"}},
		{"success envelope", `{"success":true,"data":{"id":"1","class_name":"Grade 1"}}`, item{"1", "Grade 1"}},
		{"snake wins over camel", `{"id":"1","className":"camel","class_name":"snake"}`, item{"1", "snake"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got item
			require.NoError(t, decodePayload([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePayload_ObjectNamedDataIsNotAnEnvelope(t *testing.T) {
	var got map[string]any
	require.NoError(t, decodePayload([]byte(`{"data":"x","name":"y"}`), &got))
	assert.Equal(t, map[string]any{"data": "x", "name": "y"}, got)
}

func TestDecodePayload_NestedKeys(t *testing.T) {
	var list []map[string][]map[string]int
	require.NoError(t, decodePayload([]byte(`{"data":[{"feeItems":[{"dueDay":5}]}],"message":"ok"}`), &list))
	assert.Equal(t, 5, list[0]["fee_items"][0]["due_day"])
}

func TestDecodePayload_Errors(t *testing.T) {
	var got map[string]any
	assert.ErrorIs(t, decodePayload([]byte(`<html>`), &got), ErrBadResponse)
	assert.ErrorIs(t, decodePayload([]byte(`[1,2]`), &got), ErrBadResponse)
	assert.NoError(t, decodePayload([]byte(`<html>`), nil), "ignored when nothing is decoded")
	assert.NoError(t, decodePayload(nil, &got))
}

func TestParseErrorBody(t *testing.T) {
	msg, fields := parseErrorBody([]byte(`{"message":"validation failed","errors":{"dateOfBirth":"invalid","name":["required","too short"]}}`))
	assert.Equal(t, "validation failed", msg)
	assert.Equal(t, map[string][]string{
		"date_of_birth": {"invalid"},
		"name":          {"required", "too short"},
	}, fields)

	msg, fields = parseErrorBody([]byte("Bad Gateway"))
	assert.Equal(t, "Bad Gateway", msg)
	assert.Nil(t, fields)

	msg, _ = parseErrorBody([]byte(`{"error":"nope"}`))
	assert.Equal(t, "nope", msg)
}
