package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/greyscale-document-filter/internal/bmp"
	"github.com/ironsheep/greyscale-document-filter/internal/document"
	"github.com/ironsheep/greyscale-document-filter/internal/pixel"
	"github.com/ironsheep/greyscale-document-filter/internal/report"
	"github.com/ironsheep/greyscale-document-filter/internal/store"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "document_load").
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
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	entry := s.log.WithFields(logrus.Fields{"tool": params.Name, "elapsed": time.Since(start)})
	if err != nil {
		entry.WithError(err).Warn("tool failed")
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	entry.Debug("tool done")

	return reply(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads documents from the cache, cloning before any mutation
//  4. Calls the document/report operation and writes outputs
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Document Information
	case "document_load":
		return s.handleDocumentLoad(args)
	case "document_histogram":
		return s.handleDocumentHistogram(args)
	case "document_row_shades":
		return s.handleDocumentRowShades(args)

	// Cleaning Operations
	case "document_remove_background":
		return s.handleDocumentRemoveBackground(args)
	case "document_cut_out_greys":
		return s.handleDocumentCutOutGreys(args)
	case "document_cut_out_colour":
		return s.handleDocumentCutOutColour(args)
	case "document_crop":
		return s.handleDocumentCrop(args)

	// Reports
	case "document_histogram_csv":
		return s.handleDocumentHistogramCSV(args)
	case "document_preview":
		return s.handleDocumentPreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// regionArgs is the optional region object accepted by several tools.
type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r *regionArgs) region() document.Region {
	if r == nil {
		return document.Whole()
	}
	return document.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// inkResult reports toner usage in raw ink and black-pixel units.
type inkResult struct {
	Baseline      uint64  `json:"baseline"`
	Current       uint64  `json:"current"`
	Saved         uint64  `json:"saved"`
	SavedPercent  float64 `json:"saved_percent"`
	BaselineUnits float64 `json:"baseline_units"`
	CurrentUnits  float64 `json:"current_units"`
	SavedUnits    float64 `json:"saved_units"`
}

func newInkResult(u document.InkUsage) inkResult {
	return inkResult{
		Baseline:      u.Baseline,
		Current:       u.Current,
		Saved:         u.Saved(),
		SavedPercent:  u.SavedPercent(),
		BaselineUnits: u.BaselineUnits(),
		CurrentUnits:  u.CurrentUnits(),
		SavedUnits:    u.SavedUnits(),
	}
}

// save writes a tool output and drops any cached copy of that path.
func (s *Server) save(im *document.Image, path string, source bmp.Source) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	if err := store.Save(im, path, source, document.FormatUnknown); err != nil {
		return err
	}
	s.cache.Evict(path)
	s.log.WithFields(logrus.Fields{"path": path, "source": source}).Info("wrote document")
	return nil
}

// === Document Information Handlers ===

type documentLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleDocumentLoad(args json.RawMessage) (interface{}, error) {
	var a documentLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return store.LoadInfo(s.cache, a.Path)
}

type documentHistogramArgs struct {
	Path       string      `json:"path"`
	Region     *regionArgs `json:"region,omitempty"`
	GroupEvery int         `json:"group_every"`
}

type histogramResult struct {
	Region     document.Region    `json:"region"`
	GroupEvery int                `json:"group_every"`
	Total      uint64             `json:"total"`
	Counts     []uint64           `json:"counts"`
	Background document.Threshold `json:"background"`
}

func (s *Server) handleDocumentHistogram(args json.RawMessage) (interface{}, error) {
	var a documentHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GroupEvery < 1 {
		a.GroupEvery = 1
	}
	im, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	r := a.Region.region().Normalize(im.Width(), im.Height())
	h := im.Histogram(r)
	return &histogramResult{
		Region:     r,
		GroupEvery: a.GroupEvery,
		Total:      h.Total(),
		Counts:     report.Group(&h, a.GroupEvery),
		Background: document.DefaultBackground.Threshold(&h),
	}, nil
}

type documentRowShadesArgs struct {
	Path   string `json:"path"`
	Row    int    `json:"row"`
	MinCol int    `json:"min_col"`
	MaxCol int    `json:"max_col"`
}

type rowShadesResult struct {
	Row    int   `json:"row"`
	MinCol int   `json:"min_col"`
	Shades []int `json:"shades"`
}

func (s *Server) handleDocumentRowShades(args json.RawMessage) (interface{}, error) {
	var a documentRowShadesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	im, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	shades, err := report.RowShades(im, a.Row, a.MinCol, a.MaxCol)
	if err != nil {
		return nil, err
	}

	// []uint8 would marshal as base64.
	values := make([]int, len(shades))
	for i, v := range shades {
		values[i] = int(v)
	}
	return &rowShadesResult{Row: a.Row, MinCol: a.MinCol, Shades: values}, nil
}

// === Cleaning Operation Handlers ===

type documentRemoveBackgroundArgs struct {
	Path     string      `json:"path"`
	Output   string      `json:"output"`
	Mode     string      `json:"mode"`
	ZoneSize int         `json:"zone_size"`
	Zones    int         `json:"zones"`
	Fraction *float64    `json:"fraction,omitempty"`
	PeakLow  *int        `json:"peak_low,omitempty"`
	PeakHigh *int        `json:"peak_high,omitempty"`
	Region   *regionArgs `json:"region,omitempty"`
}

type removeBackgroundResult struct {
	Output string          `json:"output"`
	Mode   string          `json:"mode"`
	Zones  []document.Zone `json:"zones"`
	Ink    inkResult       `json:"ink"`
}

func (s *Server) handleDocumentRemoveBackground(args json.RawMessage) (interface{}, error) {
	var a documentRemoveBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "zones"
	}
	if a.ZoneSize == 0 {
		a.ZoneSize = document.DefaultZoneSize
	}
	if a.Zones == 0 {
		a.Zones = document.DefaultZoneCount
	}

	b := document.DefaultBackground
	if a.Fraction != nil {
		b.Fraction = *a.Fraction
	}
	if a.PeakLow != nil {
		b.PeakLow = *a.PeakLow
	}
	if a.PeakHigh != nil {
		b.PeakHigh = *a.PeakHigh
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	cached, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	im := cached.Clone()
	r := a.Region.region()

	var zones []document.Zone
	switch a.Mode {
	case "global":
		r = r.Normalize(im.Width(), im.Height())
		zones = []document.Zone{{Region: r, Threshold: b.Remove(im, r)}}
	case "zones":
		zones, err = b.RemoveInZones(im, a.ZoneSize, r)
	case "zone-count":
		zones, err = b.RemoveInZoneCount(im, a.Zones, r)
	default:
		return nil, fmt.Errorf("unknown mode %q: want global, zones or zone-count", a.Mode)
	}
	if err != nil {
		return nil, err
	}

	if err := s.save(im, a.Output, bmp.Greyscale); err != nil {
		return nil, err
	}
	return &removeBackgroundResult{
		Output: a.Output,
		Mode:   a.Mode,
		Zones:  zones,
		Ink:    newInkResult(im.InkUsage()),
	}, nil
}

type documentCutOutGreysArgs struct {
	Path   string      `json:"path"`
	Output string      `json:"output"`
	Min    int         `json:"min"`
	Max    int         `json:"max"`
	Region *regionArgs `json:"region,omitempty"`
}

type cutOutResult struct {
	Output string    `json:"output"`
	Ink    inkResult `json:"ink"`
}

func shadeArg(name string, v int) (pixel.Grey, error) {
	if v < 0 || v > pixel.MaxLuminance {
		return pixel.Grey{}, fmt.Errorf("%s must be a shade in [0,255], got %d", name, v)
	}
	return pixel.Grey{Y: uint8(v)}, nil
}

func (s *Server) handleDocumentCutOutGreys(args json.RawMessage) (interface{}, error) {
	var a documentCutOutGreysArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	lo, err := shadeArg("min", a.Min)
	if err != nil {
		return nil, err
	}
	hi, err := shadeArg("max", a.Max)
	if err != nil {
		return nil, err
	}

	cached, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	im := cached.WithGreysCutOut(lo, hi, a.Region.region())

	if err := s.save(im, a.Output, bmp.Greyscale); err != nil {
		return nil, err
	}
	return &cutOutResult{Output: a.Output, Ink: newInkResult(im.InkUsage())}, nil
}

type documentCutOutColourArgs struct {
	Path   string      `json:"path"`
	Output string      `json:"output"`
	R      int         `json:"r"`
	G      int         `json:"g"`
	B      int         `json:"b"`
	Region *regionArgs `json:"region,omitempty"`
}

func (s *Server) handleDocumentCutOutColour(args json.RawMessage) (interface{}, error) {
	var a documentCutOutColourArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		name string
		v    int
	}{{"r", a.R}, {"g", a.G}, {"b", a.B}} {
		if c.v < 0 || c.v > pixel.MaxLuminance {
			return nil, fmt.Errorf("%s must be in [0,255], got %d", c.name, c.v)
		}
	}

	cached, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	im := cached.Clone()
	im.CutOutColour(pixel.RGB{R: uint8(a.R), G: uint8(a.G), B: uint8(a.B)}, a.Region.region())

	if err := s.save(im, a.Output, bmp.Colour); err != nil {
		return nil, err
	}
	return map[string]string{"output": a.Output}, nil
}

type documentCropArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
}

type cropResult struct {
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleDocumentCrop(args json.RawMessage) (interface{}, error) {
	var a documentCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	im, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	crop, err := im.Crop(document.Rect(a.X1, a.Y1, a.X2, a.Y2))
	if err != nil {
		return nil, err
	}
	if err := s.save(crop, a.Output, bmp.Colour); err != nil {
		return nil, err
	}
	return &cropResult{Output: a.Output, Width: crop.Width(), Height: crop.Height()}, nil
}

// === Report Handlers ===

type documentHistogramCSVArgs struct {
	Path              string `json:"path"`
	Output            string `json:"output"`
	GroupEvery        int    `json:"group_every"`
	CompareBackground bool   `json:"compare_background"`
}

type histogramCSVResult struct {
	Output string `json:"output"`
	Rows   int    `json:"rows"`
	Series int    `json:"series"`
}

func (s *Server) handleDocumentHistogramCSV(args json.RawMessage) (interface{}, error) {
	var a documentHistogramCSVArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if a.GroupEvery < 1 {
		a.GroupEvery = 1
	}
	im, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	h := im.Histogram(document.Whole())
	hists := []*document.Histogram{&h}
	if a.CompareBackground {
		cleaned := im.Clone()
		if _, err := cleaned.RemoveBackgroundInZones(document.DefaultZoneSize, document.Whole()); err != nil {
			return nil, err
		}
		hc := cleaned.Histogram(document.Whole())
		hists = append(hists, &hc)
	}

	if err := report.WriteCSVFile(a.Output, a.GroupEvery, hists...); err != nil {
		return nil, err
	}
	return &histogramCSVResult{
		Output: a.Output,
		Rows:   len(report.Group(&h, a.GroupEvery)),
		Series: len(hists),
	}, nil
}

type documentPreviewArgs struct {
	Path             string `json:"path"`
	MaxSide          int    `json:"max_side"`
	RemoveBackground bool   `json:"remove_background"`
}

func (s *Server) handleDocumentPreview(args json.RawMessage) (interface{}, error) {
	var a documentPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxSide == 0 {
		a.MaxSide = report.DefaultPreviewSize
	}
	im, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.RemoveBackground {
		im = im.Clone()
		if _, err := im.RemoveBackgroundInZones(document.DefaultZoneSize, document.Whole()); err != nil {
			return nil, err
		}
	}
	return report.PreviewPNG(im, a.MaxSide)
}
