// Package mcp exposes the care-navigation tools over a JSON-RPC 2.0
// endpoint following the model-context-protocol tool conventions, so
// an LLM-driven client can discover and invoke them.
package mcp

import "encoding/json"

// JSON-RPC 2.0 error codes used by this endpoint.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CallParams carries the params of a tools/call request.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Content is a single entry in a tool call result.
type Content struct {
	Type string      `json:"type"`
	JSON interface{} `json:"json"`
}

// CallResult wraps a tool's output in the content array the protocol
// expects.
type CallResult struct {
	Content []Content `json:"content"`
}

// ServerInfo describes this server in initialize responses.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the response to the initialize method.
type InitializeResult struct {
	ServerInfo   ServerInfo             `json:"serverInfo"`
	Capabilities map[string]interface{} `json:"capabilities"`
}

// ToolsListResult is the response to the tools/list method.
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}
