package mock

import (
	"encoding/json"
	"fmt"

	"github.com/davebream/mcpmock/internal/protocol"
	"github.com/xeipuuv/gojsonschema"
)

// ToolFunc produces the canned result for one tools/call. args holds the
// members of params.arguments; it is empty, never nil, when arguments is absent.
type ToolFunc func(args map[string]json.RawMessage) (*protocol.CallToolResult, error)

// ToolSpec pairs a descriptor with its canned behaviour.
type ToolSpec struct {
	Tool protocol.Tool
	Call ToolFunc
}

type catalogEntry struct {
	spec   ToolSpec
	schema *gojsonschema.Schema
}

// Catalog is an immutable tool table. It is built once and only read afterwards.
type Catalog struct {
	entries []catalogEntry
	index   map[string]int
}

// NewCatalog compiles every tool's input schema and indexes the tools by name.
func NewCatalog(specs ...ToolSpec) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(specs))}
	for _, spec := range specs {
		if spec.Tool.Name == "" {
			return nil, fmt.Errorf("tool name cannot be empty")
		}
		if spec.Call == nil {
			return nil, fmt.Errorf("tool %q has no implementation", spec.Tool.Name)
		}
		if _, dup := c.index[spec.Tool.Name]; dup {
			return nil, fmt.Errorf("tool %q registered twice", spec.Tool.Name)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(spec.Tool.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %q: %w", spec.Tool.Name, err)
		}
		c.index[spec.Tool.Name] = len(c.entries)
		c.entries = append(c.entries, catalogEntry{spec: spec, schema: schema})
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables known to be valid.
func MustCatalog(specs ...ToolSpec) *Catalog {
	c, err := NewCatalog(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Tools returns the descriptors in registration order. The slice and the
// schemas are copies.
func (c *Catalog) Tools() []protocol.Tool {
	tools := make([]protocol.Tool, 0, len(c.entries))
	for _, e := range c.entries {
		t := e.spec.Tool
		t.InputSchema = append(json.RawMessage(nil), t.InputSchema...)
		tools = append(tools, t)
	}
	return tools
}

// Lookup returns the implementation of the named tool.
func (c *Catalog) Lookup(name string) (ToolFunc, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].spec.Call, true
}

// CheckArguments validates arguments against the tool's input schema and
// returns a description of every violation. It never changes what a call
// returns; the dispatcher only logs the outcome.
func (c *Catalog) CheckArguments(name string, args map[string]json.RawMessage) ([]string, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	doc, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}
	result, err := c.entries[i].schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate arguments: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

const (
	EchoToolName = "echo"
	echoPrefix   = "MOCK_ECHO: "
	echoFallback = "nothing"
)

var echoInputSchema = json.RawMessage(`{"type":"object","properties":{"text":{"type":"string"}},"required":["text"]}`)

// EchoTool returns "MOCK_ECHO: " followed by arguments.text, or "nothing"
// when text is absent. A non-string text is echoed in display form
// (None, True, {'a': 1}).
func EchoTool() ToolSpec {
	return ToolSpec{
		Tool: protocol.Tool{
			Name:        EchoToolName,
			Description: "Echo back the input",
			InputSchema: echoInputSchema,
		},
		Call: echo,
	}
}

func echo(args map[string]json.RawMessage) (*protocol.CallToolResult, error) {
	text := echoFallback
	if raw, ok := args["text"]; ok {
		var err error
		if text, err = displayText(raw); err != nil {
			return nil, fmt.Errorf("echo text: %w", err)
		}
	}
	return protocol.TextResult(echoPrefix + text), nil
}

var defaultCatalog = MustCatalog(EchoTool())

// DefaultCatalog is the process-wide catalog served by tools/list: just echo.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
