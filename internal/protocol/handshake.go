package protocol

// Implementation names the server in an initialize result.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerCapabilities is always sent as an empty object: the mock advertises nothing.
type ServerCapabilities struct{}

type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
}

// NewInitializeResult builds the handshake reply. There is no version
// negotiation; the client's requested protocolVersion is never read.
func NewInitializeResult(info Implementation) *InitializeResult {
	return &InitializeResult{
		ProtocolVersion: MCPVersion,
		Capabilities:    ServerCapabilities{},
		ServerInfo:      info,
	}
}
