package mock

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/davebream/mcpmock/internal/protocol"
)

// ServerInfo is what initialize reports about the mock.
var ServerInfo = protocol.Implementation{Name: "MockServer", Version: "1.0.0"}

// Dispatcher maps one decoded request to zero or one response. It keeps no
// state between calls.
type Dispatcher struct {
	catalog *Catalog
	info    protocol.Implementation
	logger  *slog.Logger
}

func NewDispatcher(catalog *Catalog, logger *slog.Logger) *Dispatcher {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		catalog: catalog,
		info:    ServerInfo,
		logger:  logger,
	}
}

// Dispatch returns the response for req, or nil for a notification. A
// non-nil error means the request could not be processed and must get no
// reply at all.
func (d *Dispatcher) Dispatch(req *protocol.Request) (*protocol.Response, error) {
	switch method := protocol.ParseMethod(req.Method); method {
	case protocol.MethodInitialize:
		return protocol.NewResult(req.ID, protocol.NewInitializeResult(d.info)), nil

	case protocol.MethodToolsList:
		return protocol.NewResult(req.ID, &protocol.ListToolsResult{Tools: d.catalog.Tools()}), nil

	case protocol.MethodToolsCall:
		return d.callTool(req)

	case protocol.MethodInitializedNotification:
		return nil, nil

	case protocol.MethodUnknown:
		return protocol.NewError(req.ID, protocol.ErrMethodNotFound()), nil

	default:
		panic(fmt.Sprintf("unhandled method %v", method))
	}
}

func (d *Dispatcher) callTool(req *protocol.Request) (*protocol.Response, error) {
	params, err := optionalObject(req.Params)
	if err != nil {
		return nil, fmt.Errorf("tools/call params: %w", err)
	}

	// A name that is missing or not a string simply matches no tool.
	var name string
	if raw, ok := params["name"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			name = ""
		}
	}

	call, ok := d.catalog.Lookup(name)
	if !ok {
		return protocol.NewError(req.ID, protocol.ErrMethodNotFound()), nil
	}

	args, err := optionalObject(params["arguments"])
	if err != nil {
		return nil, fmt.Errorf("tools/call arguments: %w", err)
	}

	if problems, err := d.catalog.CheckArguments(name, args); err != nil {
		d.logger.Debug("cannot check tool arguments", "tool", name, "error", err)
	} else if len(problems) > 0 {
		d.logger.Debug("tool arguments do not match input schema", "tool", name, "problems", problems)
	}

	result, err := call(args)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	return protocol.NewResult(req.ID, result), nil
}

// optionalObject treats an absent member as an empty object. A present member
// must be an object; null does not count as absent.
func optionalObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if len(raw) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	return protocol.DecodeObject(raw)
}
