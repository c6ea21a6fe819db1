package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-analysis-mcp/internal/detection"
	"github.com/ironsheep/image-analysis-mcp/internal/edge"
	"github.com/ironsheep/image-analysis-mcp/internal/imaging"
	"github.com/ironsheep/image-analysis-mcp/internal/morphology"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_morphology").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	entry := s.log.WithFields(logrus.Fields{
		"tool":     params.Name,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("tool call failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	entry.Debug("tool call")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_morphology":
		return s.handleImageMorphology(args)
	case "image_line_votes":
		return s.handleImageLineVotes(args)
	case "image_list_operations":
		return s.handleListOperations()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs fills v from the tool arguments. Scalars are converted weakly,
// so "3" is accepted for an integer and "true" for a boolean.
func decodeArgs(args json.RawMessage, v interface{}) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(args, &raw); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`

	// Reload drops the cached image and its engines first.
	Reload bool `json:"reload"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.forget(a.Path)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Edge Detection ===

// Optional fields are pointers so an omitted value falls back to the
// configured default while an explicit zero is kept.
type imageEdgeDetectArgs struct {
	Path         string   `json:"path"`
	Kind         string   `json:"kind"`
	ThresholdMin *int     `json:"threshold_min"`
	ThresholdMax *int     `json:"threshold_max"`
	Monochrome   *bool    `json:"monochrome"`
	Alpha        *float64 `json:"alpha"`
}

type edgeDetectResult struct {
	*imaging.EncodedImage

	Kind         string   `json:"kind"`
	ThresholdMin int      `json:"threshold_min"`
	ThresholdMax int      `json:"threshold_max"`
	Monochrome   bool     `json:"monochrome"`
	Alpha        *float64 `json:"alpha,omitempty"`
	EdgePixels   int      `json:"edge_pixels"`
	KernelMax    int      `json:"kernel_max"`
	Cached       bool     `json:"cached"`
}

func (s *Server) edgeParams(a imageEdgeDetectArgs) (edge.Params, error) {
	def := s.cfg.Edge
	name := a.Kind
	if name == "" {
		name = def.Kind
	}
	kind, err := edge.ParseKind(name)
	if err != nil {
		return edge.Params{}, err
	}

	p := edge.Params{
		Kind:         kind,
		ThresholdMin: def.ThresholdMin,
		ThresholdMax: def.ThresholdMax,
		Monochrome:   def.Monochrome,
		Alpha:        def.Alpha,
	}
	if a.ThresholdMin != nil {
		p.ThresholdMin = *a.ThresholdMin
	}
	if a.ThresholdMax != nil {
		p.ThresholdMax = *a.ThresholdMax
	}
	if a.Monochrome != nil {
		p.Monochrome = *a.Monochrome
	}
	if a.Alpha != nil {
		p.Alpha = *a.Alpha
	}
	return p, nil
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.edgeParams(a)
	if err != nil {
		return nil, err
	}

	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := sess.edge.Detect(p)
	if err != nil {
		return nil, err
	}

	enc, err := imaging.EncodePNG(res.Image())
	if err != nil {
		return nil, err
	}

	out := &edgeDetectResult{
		EncodedImage: enc,
		Kind:         p.Kind.String(),
		ThresholdMin: p.ThresholdMin,
		ThresholdMax: p.ThresholdMax,
		Monochrome:   p.Monochrome,
		EdgePixels:   res.Edges,
		KernelMax:    res.KernelMax,
		Cached:       res.Cached,
	}
	if p.Kind.UsesAlpha() {
		alpha := p.Alpha
		out.Alpha = &alpha
	}
	return out, nil
}

// === Morphology ===

type imageMorphologyArgs struct {
	Path         string `json:"path"`
	Operation    string `json:"operation"`
	Dimension    *int   `json:"dimension"`
	Neighborhood string `json:"neighborhood"`
}

type morphologyResult struct {
	*imaging.EncodedImage

	Operation        string `json:"operation"`
	Dimension        int    `json:"dimension"`
	Neighborhood     string `json:"neighborhood"`
	ForegroundPixels int    `json:"foreground_pixels"`
	Changed          bool   `json:"changed"`
	Passes           int    `json:"passes,omitempty"`
}

func (s *Server) handleImageMorphology(args json.RawMessage) (interface{}, error) {
	var a imageMorphologyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	op, err := morphology.ParseOperation(a.Operation)
	if err != nil {
		return nil, err
	}
	name := a.Neighborhood
	if name == "" {
		name = s.cfg.Morphology.Neighborhood
	}
	n, err := morphology.ParseNeighborhood(name)
	if err != nil {
		return nil, err
	}
	dim := s.cfg.Morphology.Dimension
	if a.Dimension != nil {
		dim = *a.Dimension
	}

	sess, err := s.session(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := sess.morph.Apply(op, dim, n)
	if err != nil {
		return nil, err
	}

	enc, err := imaging.EncodePNG(res.Image())
	if err != nil {
		return nil, err
	}
	return &morphologyResult{
		EncodedImage:     enc,
		Operation:        op.String(),
		Dimension:        dim,
		Neighborhood:     n.String(),
		ForegroundPixels: res.Foreground,
		Changed:          res.Changed,
		Passes:           res.Passes,
	}, nil
}

// === Line Voting ===

type imageLineVotesArgs struct {
	Path         string `json:"path"`
	MaxDimension *int   `json:"max_dimension"`
	Colormap     string `json:"colormap"`
}

type lineVotesResult struct {
	*imaging.EncodedImage

	// Scale is the factor applied to the source before voting.
	Scale        float64         `json:"scale"`
	SourceWidth  int             `json:"source_width"`
	SourceHeight int             `json:"source_height"`
	Colormap     string          `json:"colormap"`
	Voters       int             `json:"voters"`
	Peak         *detection.Peak `json:"peak"`
	Slope        [2]int          `json:"slope_range"`
	Intercept    [2]int          `json:"intercept_range"`
}

func (s *Server) handleImageLineVotes(args json.RawMessage) (interface{}, error) {
	var a imageLineVotesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	name := a.Colormap
	if name == "" {
		name = s.cfg.Lines.Colormap
	}
	cm, err := imaging.ParseColormap(name)
	if err != nil {
		return nil, err
	}
	maxDim := s.cfg.Lines.MaxDimension
	if a.MaxDimension != nil {
		maxDim = *a.MaxDimension
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	src, scale := imaging.Downscale(img, maxDim)

	voter, err := detection.NewLineVoter(src,
		detection.WithWorkers(s.cfg.Processing.Workers),
		detection.WithMaxCells(s.cfg.Processing.MaxAccumulatorCells))
	if err != nil {
		return nil, err
	}
	res, err := voter.Vote()
	if err != nil {
		return nil, err
	}

	enc, err := imaging.EncodePNG(imaging.Render(res.Accumulator.Votes, cm))
	if err != nil {
		return nil, err
	}
	acc := res.Accumulator
	return &lineVotesResult{
		EncodedImage: enc,
		Scale:        scale,
		SourceWidth:  src.Bounds().Dx(),
		SourceHeight: src.Bounds().Dy(),
		Colormap:     string(cm),
		Voters:       res.Voters,
		Peak:         res.Peak,
		Slope:        [2]int{acc.AMin, acc.AMax},
		Intercept:    [2]int{acc.BMin, acc.BMax},
	}, nil
}

// === Catalogue ===

type edgeKindInfo struct {
	Name        string `json:"name"`
	Implemented bool   `json:"implemented"`
	UsesAlpha   bool   `json:"uses_alpha"`
}

type operationsResult struct {
	EdgeKinds     []edgeKindInfo `json:"edge_kinds"`
	Operations    []string       `json:"morphology_operations"`
	Neighborhoods []string       `json:"neighborhoods"`
	MaxDimension  int            `json:"max_dimension"`
	Colormaps     []string       `json:"colormaps"`
}

func (s *Server) handleListOperations() (interface{}, error) {
	res := &operationsResult{
		Operations:    names(morphology.Operations()),
		Neighborhoods: names(morphology.Neighborhoods()),
		MaxDimension:  morphology.MaxDimension,
		Colormaps:     []string{string(imaging.ColormapGray), string(imaging.ColormapHeat)},
	}
	for _, k := range edge.Kinds() {
		res.EdgeKinds = append(res.EdgeKinds, edgeKindInfo{
			Name:        k.String(),
			Implemented: k.Implemented(),
			UsesAlpha:   k.UsesAlpha(),
		})
	}
	return res, nil
}

func names[T fmt.Stringer](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}
