package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/raster-kernels/internal/imaging"
	"github.com/ironsheep/raster-kernels/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "raster_grayscale").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Builds the stage list for the request
//  4. Loads the source from cache and runs the stages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Single Stage Operations
	case "raster_grayscale":
		return s.handleRasterGrayscale(args)
	case "raster_box_blur":
		return s.handleRasterBoxBlur(args)
	case "raster_convolve":
		return s.handleRasterConvolve(args)
	case "raster_edge_detect":
		return s.handleRasterEdgeDetect(args)

	// Pipelines
	case "raster_pipeline":
		return s.handleRasterPipeline(args)
	case "raster_render_variants":
		return s.handleRasterRenderVariants(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// sampleArgs is embedded in every tool returning a raster. Samples lists
// output pixels to report alongside the encoded image.
type sampleArgs struct {
	Samples []imaging.LabeledPoint `json:"samples"`
}

// runStages loads path through the cache, applies stages and encodes the
// final grid together with the requested pixel samples.
func (s *Server) runStages(path string, stages []pipeline.Stage, points []imaging.LabeledPoint) (*imaging.RasterResult, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	out, err := s.runner.Run(img, stages)
	if err != nil {
		return nil, err
	}

	var samples []imaging.PixelSample
	if len(points) > 0 {
		if samples, err = imaging.SamplePixels(out, points); err != nil {
			return nil, err
		}
	}

	result, err := imaging.EncodeResult(out, pipeline.Names(stages))
	if err != nil {
		return nil, err
	}
	result.Samples = samples
	return result, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// handleImageLoad always decodes the file again, replacing any cached copy.
func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Single Stage Handlers ===

type rasterGrayscaleArgs struct {
	sampleArgs
	Path   string `json:"path"`
	Policy string `json:"policy"`
}

func (s *Server) handleRasterGrayscale(args json.RawMessage) (interface{}, error) {
	var a rasterGrayscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	policy, err := imaging.ParseGrayPolicy(a.Policy)
	if err != nil {
		return nil, err
	}
	return s.runStages(a.Path, []pipeline.Stage{pipeline.GrayscaleStage(policy)}, a.Samples)
}

type rasterBoxBlurArgs struct {
	sampleArgs
	Path  string   `json:"path"`
	Size  int      `json:"size"`
	Value *float64 `json:"value"`
}

func (s *Server) handleRasterBoxBlur(args json.RawMessage) (interface{}, error) {
	var a rasterBoxBlurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Size == 0 {
		a.Size = 5
	}
	value := 1.0
	if a.Value != nil {
		value = *a.Value
	}
	stage, err := pipeline.BoxBlurStage(value, a.Size)
	if err != nil {
		return nil, err
	}
	return s.runStages(a.Path, []pipeline.Stage{stage}, a.Samples)
}

type rasterConvolveArgs struct {
	sampleArgs
	Path    string      `json:"path"`
	Weights [][]float64 `json:"weights"`
}

func (s *Server) handleRasterConvolve(args json.RawMessage) (interface{}, error) {
	var a rasterConvolveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	k, err := imaging.NewKernel(a.Weights)
	if err != nil {
		return nil, err
	}
	stage, err := pipeline.ConvolveStage(k)
	if err != nil {
		return nil, err
	}
	return s.runStages(a.Path, []pipeline.Stage{stage}, a.Samples)
}

type rasterEdgeDetectArgs struct {
	sampleArgs
	Path      string   `json:"path"`
	Prepare   *bool    `json:"prepare"`
	Threshold *float64 `json:"threshold"`
	Highlight *int     `json:"highlight"`
	Margin    *int     `json:"margin"`
}

func (s *Server) handleRasterEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a rasterEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	edge, err := pipeline.StageConfig{
		Type:      "edge_detect",
		Threshold: a.Threshold,
		Highlight: a.Highlight,
		Margin:    a.Margin,
	}.Build()
	if err != nil {
		return nil, err
	}

	var stages []pipeline.Stage
	if a.Prepare == nil || *a.Prepare {
		blur, err := pipeline.BoxBlurStage(1, 3)
		if err != nil {
			return nil, err
		}
		stages = append(stages, pipeline.GrayscaleStage(imaging.GrayLuminance), blur)
	}
	stages = append(stages, edge)

	return s.runStages(a.Path, stages, a.Samples)
}

// === Pipeline Handlers ===

type rasterPipelineArgs struct {
	sampleArgs
	Path   string                 `json:"path"`
	Stages []pipeline.StageConfig `json:"stages"`
}

func (s *Server) handleRasterPipeline(args json.RawMessage) (interface{}, error) {
	var a rasterPipelineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	stages, err := pipeline.BuildStages(a.Stages)
	if err != nil {
		return nil, err
	}
	return s.runStages(a.Path, stages, a.Samples)
}

type rasterRenderVariantsArgs struct {
	Path      string                   `json:"path"`
	OutputDir string                   `json:"output_dir"`
	Variants  []pipeline.VariantConfig `json:"variants"`
}

// RenderVariantsResult lists the files written by raster_render_variants.
type RenderVariantsResult struct {
	Source   string              `json:"source"`
	Rendered []pipeline.Rendered `json:"rendered"`
}

func (s *Server) handleRasterRenderVariants(args json.RawMessage) (interface{}, error) {
	var a rasterRenderVariantsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}

	variants := s.variants
	if len(a.Variants) > 0 {
		built, err := pipeline.BuildVariants(a.Variants)
		if err != nil {
			return nil, err
		}
		variants = built
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	rendered, err := s.runner.Render(img, variants, a.OutputDir)
	if err != nil {
		return nil, err
	}
	return &RenderVariantsResult{Source: a.Path, Rendered: rendered}, nil
}
