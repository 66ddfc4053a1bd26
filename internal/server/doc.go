// Package server implements the MCP (Model Context Protocol) server for raster
// kernel tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the grayscale,
// convolution and edge detection stages of the pipeline package to
// MCP-compatible clients.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Single Stage Operations:
//   - raster_grayscale: Average, luminance or lightness reduction
//   - raster_box_blur: Uniform square kernel
//   - raster_convolve: Caller-supplied square kernel
//   - raster_edge_detect: Sobel gradients with a single threshold
//
// Pipelines:
//   - raster_pipeline: Apply a declared list of stages
//   - raster_render_variants: Write every configured variant to disk
//
// Single stage and pipeline tools return the result as a base64-encoded PNG
// together with the names of the stages applied.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded sources. Every tool call
// runs its stages on a private copy, so cached images are never modified. A
// source whose modification time or size changes on disk is decoded again on
// its next use, and image_load always decodes afresh.
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
//	srv := server.New(server.WithLogger(log.Default()))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
