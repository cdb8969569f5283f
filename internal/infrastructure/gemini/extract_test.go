package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		span, err := ExtractJSONObject(`{"intent":"help"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"intent":"help"}`, span)
	})

	t.Run("json code fence", func(t *testing.T) {
		span, err := ExtractJSONObject("```json\n{\"intent\":\"help\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, `{"intent":"help"}`, span)
	})

	t.Run("surrounding prose", func(t *testing.T) {
		span, err := ExtractJSONObject("Sure! Here you go: {\"intent\":\"help\"} Hope that helps.")
		require.NoError(t, err)
		assert.Equal(t, `{"intent":"help"}`, span)
	})

	t.Run("nested objects", func(t *testing.T) {
		raw := `{"intent":"add_items","params":{"items":[{"name":"milk"}]}}`
		span, err := ExtractJSONObject(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, span)
	})

	t.Run("braces inside strings ignored", func(t *testing.T) {
		raw := `{"message":"use {curly} braces","intent":"help"}`
		span, err := ExtractJSONObject(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, span)
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		raw := `{"message":"she said \"add milk\" {","intent":"help"}`
		span, err := ExtractJSONObject(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, span)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ExtractJSONObject("I cannot answer that.")
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ExtractJSONObject("")
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})

	t.Run("unbalanced object", func(t *testing.T) {
		_, err := ExtractJSONObject("```json\n{\"intent\":\"help\"")
		assert.ErrorIs(t, err, ErrUnbalancedJSON)
	})

	t.Run("only trailing text after close counts as balanced", func(t *testing.T) {
		span, err := ExtractJSONObject(`{"a":1}}}`)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, span)
	})
}
