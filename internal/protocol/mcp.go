package protocol

import (
	"encoding/json"
	"fmt"
)

// MCPVersion is the only protocol revision the mock speaks. It is returned
// verbatim whatever the client asks for.
const MCPVersion = "2024-11-05"

// Method is the closed set of methods the mock understands.
type Method int

const (
	MethodUnknown Method = iota
	MethodInitialize
	MethodToolsList
	MethodToolsCall
	MethodInitializedNotification
)

var methodNames = map[string]Method{
	"initialize":                MethodInitialize,
	"tools/list":                MethodToolsList,
	"tools/call":                MethodToolsCall,
	"notifications/initialized": MethodInitializedNotification,
}

// ParseMethod maps a wire method name to a Method, falling back to MethodUnknown.
func ParseMethod(name string) Method {
	if m, ok := methodNames[name]; ok {
		return m
	}
	return MethodUnknown
}

func (m Method) String() string {
	switch m {
	case MethodInitialize:
		return "initialize"
	case MethodToolsList:
		return "tools/list"
	case MethodToolsCall:
		return "tools/call"
	case MethodInitializedNotification:
		return "notifications/initialized"
	case MethodUnknown:
		return "unknown"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// IsNotification reports whether the method never gets a reply.
func (m Method) IsNotification() bool {
	return m == MethodInitializedNotification
}

// Tool describes one invocable tool in a tools/list result.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// TextResult wraps a single text block in a successful tool result.
func TextResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []Content{{Type: "text", Text: text}},
		IsError: false,
	}
}
