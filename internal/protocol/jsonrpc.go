package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const Version = "2.0"

// Reserved JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ErrNotObject is returned when a line decodes to valid JSON that is not an object.
var ErrNotObject = errors.New("JSON-RPC message is not an object")

// Request is a decoded JSON-RPC 2.0 request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// ParseRequest decodes one line into a Request. Anything other than a JSON
// object (including a bare null) is rejected.
func ParseRequest(data []byte) (*Request, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("parse JSON-RPC request: empty line")
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("parse JSON-RPC request: invalid JSON")
		}
		return nil, ErrNotObject
	}
	var wire struct {
		JSONRPC json.RawMessage `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  json.RawMessage `json:"method"`
		Params  json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("parse JSON-RPC request: %w", err)
	}
	// A method (or version) that is not a string is kept as "" so the
	// request still gets a method-not-found reply.
	return &Request{
		JSONRPC: stringOrEmpty(wire.JSONRPC),
		ID:      wire.ID,
		Method:  stringOrEmpty(wire.Method),
		Params:  wire.Params,
	}, nil
}

func stringOrEmpty(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// DecodeObject decodes raw into its members. Only a JSON object is accepted;
// null, arrays and scalars yield ErrNotObject.
func DecodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return members, nil
}

// HasID reports whether the request carried an id member, including an explicit null.
func (r *Request) HasID() bool {
	return len(r.ID) > 0
}

// Error is the error member of a JSON-RPC response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// ErrMethodNotFound is the one error object the mock ever sends.
func ErrMethodNotFound() *Error {
	return &Error{Code: CodeMethodNotFound, Message: "Method not found"}
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error is set.
// ID is never omitted: a missing request id is echoed as null.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func NewResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

func NewError(id json.RawMessage, rpcErr *Error) *Response {
	return &Response{JSONRPC: Version, ID: id, Error: rpcErr}
}

func (r *Response) Serialize() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("serialize JSON-RPC response: %w", err)
	}
	return data, nil
}
