// Package imaging handles image I/O around the analysis engines.
//
// It loads and caches source images, shrinks them when an engine's working
// space would grow too large, renders scalar rasters with a colormap and
// encodes results as base64 PNG for the MCP server.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless.
//
// # Colormaps
//
// Results are grayscale by default: every channel equals the value clamped to
// 0..255. The heat colormap stretches 0..max over a blue-to-red hue ramp,
// which keeps vote maps with small counts readable.
//
// # Memory
//
// Cached images stay in memory until Evict or Clear is called.
package imaging
