// Package server implements the MCP (Model Context Protocol) server for the
// document background filter.
//
// The server speaks JSON-RPC 2.0 over stdio and exposes the greyscale cleaning
// operations as MCP tools, so an MCP client can inspect a scanned page, strip
// its paper tone and measure the toner it saves.
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
// Document Information:
//   - document_load: Load a bitmap and report size and baseline ink
//   - document_histogram: Grey-shade frequencies and the detected background
//   - document_row_shades: Grey shades along one row
//
// Cleaning Operations:
//   - document_remove_background: Whiten the paper globally or per zone
//   - document_cut_out_greys: Whiten an inclusive range of shades
//   - document_cut_out_colour: Whiten one exact colour
//   - document_crop: Extract a rectangular region
//
// Reports:
//   - document_histogram_csv: Write the histogram as CSV
//   - document_preview: Downscaled PNG preview as base64
//
// Tools that produce a document write it to the "output" path and never alter
// the source file.
//
// # Document Caching
//
// Loaded documents are cached by path with their greyscale grid already
// derived. Cached documents are shared between calls and treated as
// read-only: cleaning tools work on a copy. Writing an output path drops any
// cached copy of it.
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
//	srv := server.New(logrus.StandardLogger())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
