package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	t.Run("request with integer id", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`))
		require.NoError(t, err)
		assert.True(t, req.HasID())
		assert.Equal(t, json.RawMessage(`1`), req.ID)
		assert.Equal(t, "tools/list", req.Method)
	})

	t.Run("request with string id", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":"abc","method":"tools/call"}`))
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage(`"abc"`), req.ID)
	})

	t.Run("notification has no id", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
		require.NoError(t, err)
		assert.False(t, req.HasID())
	})

	t.Run("surrounding whitespace and CRLF", func(t *testing.T) {
		req, err := ParseRequest([]byte("  {\"jsonrpc\":\"2.0\",\"id\":2,\"method\":\"initialize\"}\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "initialize", req.Method)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRequest([]byte(`{invalid`))
		assert.Error(t, err)
	})

	t.Run("empty line", func(t *testing.T) {
		_, err := ParseRequest([]byte("   "))
		assert.Error(t, err)
	})

	t.Run("non-object values are rejected", func(t *testing.T) {
		for _, line := range []string{`null`, `[1,2]`, `"initialize"`, `42`} {
			_, err := ParseRequest([]byte(line))
			assert.ErrorIs(t, err, ErrNotObject, line)
		}
	})

	t.Run("method of wrong type becomes empty", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":7}`))
		require.NoError(t, err)
		assert.Equal(t, "", req.Method)
		assert.Equal(t, json.RawMessage(`1`), req.ID)
	})

	t.Run("explicit null id is kept", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":null,"method":"initialize"}`))
		require.NoError(t, err)
		assert.True(t, req.HasID())
		assert.Equal(t, json.RawMessage(`null`), req.ID)
	})
}

func TestDecodeObject(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		members, err := DecodeObject(json.RawMessage(`{"name":"echo","arguments":{}}`))
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage(`"echo"`), members["name"])
		assert.JSONEq(t, `{}`, string(members["arguments"]))
	})

	t.Run("empty object", func(t *testing.T) {
		members, err := DecodeObject(json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("non-objects", func(t *testing.T) {
		for _, raw := range []string{``, `null`, `[]`, `"text"`, `true`} {
			_, err := DecodeObject(json.RawMessage(raw))
			assert.ErrorIs(t, err, ErrNotObject, raw)
		}
	})

	t.Run("truncated object", func(t *testing.T) {
		_, err := DecodeObject(json.RawMessage(`{"a":`))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotObject)
	})
}

func TestResponseSerialize(t *testing.T) {
	t.Run("result response", func(t *testing.T) {
		data, err := NewResult(json.RawMessage(`7`), map[string]any{"ok": true}).Serialize()
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"result":{"ok":true}}`, string(data))
	})

	t.Run("error response has no result member", func(t *testing.T) {
		data, err := NewError(json.RawMessage(`"x"`), ErrMethodNotFound()).Serialize()
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","id":"x","error":{"code":-32601,"message":"Method not found"}}`, string(data))
	})

	t.Run("missing id is written as null", func(t *testing.T) {
		data, err := NewError(nil, ErrMethodNotFound()).Serialize()
		require.NoError(t, err)
		assert.Contains(t, string(data), `"id":null`)
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "jsonrpc error -32601: Method not found", ErrMethodNotFound().Error())
}
