// Package server implements the MCP (Model Context Protocol) server for the
// Voronoi generator.
//
// This package provides a JSON-RPC 2.0 server that lets MCP clients generate
// diagrams, inspect individual cells and read colours back from saved images.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Generation:
//   - voronoi_generate: Build a diagram, optionally save it, return its id
//
// Inspection:
//   - voronoi_status: Sites, palette size and degenerate flag
//   - voronoi_cell: Kind, owning site, distance and colour of one cell
//   - voronoi_coverage: Cells owned by each site
//
// Color Operations:
//   - voronoi_palette: Palette entries in hex, RGB and HSL
//   - voronoi_sample_color: Colour at a pixel of a saved image
//
// # Diagram Store
//
// Generated diagrams are kept in memory under ids of the form "diagram-N" for
// the lifetime of the server process. Saved images read by
// voronoi_sample_color are cached by path; regenerating to the same path
// evicts the cached copy.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(logger)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Error("server stopped", "error", err)
//	}
//
// Logging goes to the hclog.Logger passed to New and never to stdout.
package server
