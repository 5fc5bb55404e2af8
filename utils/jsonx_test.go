package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReply struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

func TestDecodeObject_CleanJSON(t *testing.T) {
	var r testReply
	require.NoError(t, DecodeObject(`{"action":"answer","text":"ok"}`, &r))
	assert.Equal(t, "answer", r.Action)
}

func TestDecodeObject_FencedJSON(t *testing.T) {
	raw := "```json\n{\"action\":\"update\",\"text\":\"done\"}\n```"
	var r testReply
	require.NoError(t, DecodeObject(raw, &r))
	assert.Equal(t, "update", r.Action)
	assert.Equal(t, "done", r.Text)
}

func TestDecodeObject_SurroundingText(t *testing.T) {
	raw := "Вот ответ:\n{\"action\":\"answer\",\"text\":\"привет\"}\nНадеюсь, помог!"
	var r testReply
	require.NoError(t, DecodeObject(raw, &r))
	assert.Equal(t, "привет", r.Text)
}

func TestDecodeObject_NestedBraces(t *testing.T) {
	raw := `{"action":"update","text":"x {not a field}"}`
	var r testReply
	require.NoError(t, DecodeObject(raw, &r))
	assert.Equal(t, "x {not a field}", r.Text)
}

func TestDecodeObject_NoObject(t *testing.T) {
	var r testReply
	assert.ErrorIs(t, DecodeObject("just words, no braces", &r), ErrNoJSONObject)
}

func TestDecodeObject_BareArrayFails(t *testing.T) {
	var r testReply
	assert.Error(t, DecodeObject(`[1, 2, 3]`, &r))
}

func TestExtractJSONObject_UnbalancedBraces(t *testing.T) {
	_, err := ExtractJSONObject(`{"action":"answer","text":"truncated`)
	assert.ErrorIs(t, err, ErrNoJSONObject)
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 1800.5, 1800.5},
		{"numeric string", "1800", 1800},
		{"garbage string", "a lot", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"json.Number", json.Number("42.5"), 42.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsNumber(tt.in))
		})
	}
}
