// Package server implements the MCP (Model Context Protocol) server for the
// raster analysis engines.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to the logrus logger passed to New, which the binary points at
// stderr so it never interleaves with protocol frames.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: Load an image and report its metadata
//   - image_dimensions: Width and height only
//
// Engines:
//   - image_edge_detect: Gradient operator, normalization and double threshold
//   - image_morphology: Binary morphology with a shaped structuring element
//   - image_line_votes: Slope/intercept line voting with the strongest line
//
// Catalogue:
//   - image_list_operations: Names accepted by the engine tools
//
// Engine results carry the rendered raster as a base64 PNG next to the
// metadata of the run.
//
// # Defaults
//
// Optional tool arguments fall back to the edge, morphology and lines sections
// of the configuration passed to New.
//
// # Sessions
//
// Decoded images are cached by path. The edge and morphology engines for a
// path are created on first use and kept, so repeated edge detection with a
// new threshold reuses the last kernel pass. image_load with reload set drops
// both.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, logger, server.WithVersion(Version))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
