package server

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/export"
	"github.com/ZacxDev/video-overlay/internal/filter"
	"github.com/ZacxDev/video-overlay/internal/overlay"
	"github.com/ZacxDev/video-overlay/internal/preview"
	"github.com/ZacxDev/video-overlay/internal/timeline"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

type sessionEntry struct {
	videoID   string
	session   *editor.Session
	timeline  *timeline.Timeline
	exporting atomic.Bool
}

type sessionView struct {
	ID       string                  `json:"id"`
	VideoID  string                  `json:"videoId"`
	Duration float64                 `json:"duration"`
	Overlays []overlay.TextOperation `json:"overlays"`
}

func (e *sessionEntry) view() sessionView {
	return sessionView{
		ID:       e.session.ID,
		VideoID:  e.videoID,
		Duration: e.timeline.Duration(),
		Overlays: e.session.TextOperations(),
	}
}

type sessionHandler func(c *gin.Context, e *sessionEntry)

// withSession resolves the :id path parameter before calling h
func (s *Server) withSession(h sessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.RLock()
		e, ok := s.sessions[c.Param("id")]
		s.mu.RUnlock()
		if !ok {
			respondStatus(c, http.StatusNotFound, "session not found", "session_not_found")
			return
		}
		h(c, e)
	}
}

type createSessionRequest struct {
	VideoID  string              `json:"videoId"`
	Overlays []types.TextOverlay `json:"textOverlays"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inputPath, err := s.store.Resolve(req.VideoID)
	if err != nil {
		respondError(c, err)
		return
	}

	session := editor.NewSession(inputPath)
	for _, o := range req.Overlays {
		session.AddText(o.Operation(s.cfg.Overlay.DefaultDuration))
	}
	e := &sessionEntry{
		videoID:  req.VideoID,
		session:  session,
		timeline: timeline.New(session, s.duration(inputPath)),
	}

	s.mu.Lock()
	s.sessions[session.ID] = e
	s.mu.Unlock()

	s.logger.Info().Str("session", session.ID).Str("video", req.VideoID).Msg("session created")
	c.JSON(http.StatusCreated, types.ApiResponse{Success: true, Data: e.view()})
}

func (s *Server) handleGetSession(c *gin.Context, e *sessionEntry) {
	respond(c, e.view())
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		respondStatus(c, http.StatusNotFound, "session not found", "session_not_found")
		return
	}
	c.Status(http.StatusNoContent)
}

type stageView struct {
	Overlay string            `json:"overlay"`
	Filter  string            `json:"filter"`
	Options map[string]string `json:"options"`
}

type filtersView struct {
	Graph  string      `json:"graph"`
	Stages []stageView `json:"stages"`
}

func (s *Server) handleFilters(c *gin.Context, e *sessionEntry) {
	stages := filter.Compile(e.session.Operations(), filter.Options{MediaDuration: e.timeline.Duration()})
	view := filtersView{Graph: filter.Graph(stages), Stages: make([]stageView, 0, len(stages))}
	for _, stage := range stages {
		view.Stages = append(view.Stages, stageView{
			Overlay: stage.OperationID,
			Filter:  stage.String(),
			Options: stage.Args(),
		})
	}
	respond(c, view)
}

// handleExport renders the session. Only one export per session runs at a
// time; an overlapping request gets 409.
func (s *Server) handleExport(c *gin.Context, e *sessionEntry) {
	if !e.exporting.CompareAndSwap(false, true) {
		respondStatus(c, http.StatusConflict, "export already running", "export_in_progress")
		return
	}
	defer e.exporting.Store(false)

	eng, format, err := s.newEngine(e.session.InputPath, e.timeline.Duration())
	if err != nil {
		respondError(c, err)
		return
	}
	name, outputPath := s.store.OutputPath("output", format)
	if err := export.New(e.session, eng, s.logger).Export(outputPath); err != nil {
		respondError(c, err)
		return
	}
	respond(c, types.EditedVideo{OutputPath: name})
}

func (s *Server) handleAddOverlay(c *gin.Context, e *sessionEntry) {
	var req types.TextOverlay
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	op := e.session.AddText(req.Operation(s.cfg.Overlay.DefaultDuration))
	c.JSON(http.StatusCreated, types.ApiResponse{Success: true, Data: op})
}

type overlayPatch struct {
	Text     *string            `json:"text"`
	Position *overlay.Position  `json:"position"`
	Style    *overlay.TextStyle `json:"style"`
	Start    *float64           `json:"start"`
	Duration *float64           `json:"duration"`
}

func (s *Server) handleEditOverlay(c *gin.Context, e *sessionEntry) {
	var req overlayPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Start != nil && *req.Start < 0 {
		badRequest(c, errors.New("start must not be negative"))
		return
	}
	if req.Duration != nil && *req.Duration <= 0 {
		badRequest(c, errors.New("duration must be positive"))
		return
	}
	if req.Position != nil {
		clamped := req.Position.Clamp()
		req.Position = &clamped
	}
	op, err := e.session.ApplyEdit(c.Param("oid"), editor.Patch(req))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, op)
}

func (s *Server) handleDeleteOverlay(c *gin.Context, e *sessionEntry) {
	if err := e.session.Remove(c.Param("oid")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type timelineView struct {
	Zoom     float64           `json:"zoom"`
	Duration float64           `json:"duration"`
	Width    float64           `json:"width"`
	Markers  []timeline.Marker `json:"markers"`
	Tracks   []timeline.Track  `json:"tracks"`
}

func timelineOf(tl *timeline.Timeline) timelineView {
	return timelineView{
		Zoom:     tl.Zoom(),
		Duration: tl.Duration(),
		Width:    tl.Width(),
		Markers:  tl.Markers(),
		Tracks:   tl.Tracks(),
	}
}

func (s *Server) handleTimeline(c *gin.Context, e *sessionEntry) {
	respond(c, timelineOf(e.timeline))
}

type zoomRequest struct {
	Action string   `json:"action"` // "in" or "out"
	Zoom   *float64 `json:"zoom"`
}

func (s *Server) handleZoom(c *gin.Context, e *sessionEntry) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	switch {
	case req.Zoom != nil:
		e.timeline.SetZoom(*req.Zoom)
	case req.Action == "in":
		e.timeline.ZoomIn()
	case req.Action == "out":
		e.timeline.ZoomOut()
	default:
		badRequest(c, errors.New("zoom or action (in, out) is required"))
		return
	}
	respond(c, timelineOf(e.timeline))
}

type seekRequest struct {
	Pixels float64 `json:"pixels"`
}

func (s *Server) handleSeek(c *gin.Context, e *sessionEntry) {
	var req seekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respond(c, gin.H{"time": e.timeline.Seek(req.Pixels)})
}

// Deltas are seconds unless unit is "px"
type dragRequest struct {
	Delta float64 `json:"delta"`
	Unit  string  `json:"unit"`
}

type resizeRequest struct {
	Edge  string  `json:"edge" binding:"required,oneof=start end"`
	Delta float64 `json:"delta"`
	Unit  string  `json:"unit"`
}

func (s *Server) handleDrag(c *gin.Context, e *sessionEntry) {
	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var track timeline.Track
	var err error
	if req.Unit == "px" {
		track, err = e.timeline.DragPixels(c.Param("oid"), req.Delta)
	} else {
		track, err = e.timeline.ApplyDrag(c.Param("oid"), req.Delta)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, track)
}

func (s *Server) handleResize(c *gin.Context, e *sessionEntry) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	isStart := req.Edge == "start"
	var track timeline.Track
	var err error
	if req.Unit == "px" {
		track, err = e.timeline.ResizePixels(c.Param("oid"), isStart, req.Delta)
	} else {
		track, err = e.timeline.ApplyResize(c.Param("oid"), isStart, req.Delta)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, track)
}

func (s *Server) handleDeleteTrack(c *gin.Context, e *sessionEntry) {
	if err := e.timeline.DeleteTrack(c.Param("oid")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type visibleQuery struct {
	Time float64 `form:"t"`
}

func (s *Server) handleVisible(c *gin.Context, e *sessionEntry) {
	var q visibleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	visible := preview.Visible(e.session.Operations(), q.Time)
	if visible == nil {
		visible = []overlay.TextOperation{}
	}
	respond(c, visible)
}

type previewDragRequest struct {
	Canvas preview.Canvas `json:"canvas"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
}

func (s *Server) handlePreviewDrag(c *gin.Context, e *sessionEntry) {
	var req previewDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	op, err := preview.Drag(e.session, c.Param("oid"), req.Canvas, req.X, req.Y)
	if err != nil {
		if _, ok := types.KindOf(err); !ok {
			badRequest(c, err)
			return
		}
		respondError(c, err)
		return
	}
	respond(c, op)
}
