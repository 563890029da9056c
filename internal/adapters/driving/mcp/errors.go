// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Emsal. It lets AI assistants search the decision archive and pull
// full decision texts.
package mcp

import "errors"

// ErrMissingReadService is returned when the read service is not provided.
var ErrMissingReadService = errors.New("mcp: read service is required")
