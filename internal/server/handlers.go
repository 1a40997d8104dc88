package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ZacxDev/video-overlay/internal/config"
	"github.com/ZacxDev/video-overlay/internal/editor"
	"github.com/ZacxDev/video-overlay/internal/export"
	"github.com/ZacxDev/video-overlay/internal/platform"
	"github.com/ZacxDev/video-overlay/pkg/types"
)

type profileView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Format      string `json:"format"`
}

func (s *Server) handleProfiles(c *gin.Context) {
	var profiles []profileView
	for _, name := range platform.GetSupportedPlatforms() {
		p, err := platform.Get(name)
		if err != nil {
			respondError(c, err)
			return
		}
		profiles = append(profiles, profileView{
			Name:        p.GetName(),
			Description: p.GetDescription(),
			Format:      p.GetOutputFormat(),
		})
	}
	respond(c, profiles)
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		respondStatus(c, http.StatusBadRequest, "No file uploaded", string(types.ErrorKindInvalidOperation))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, "open upload"))
		return
	}
	defer file.Close()

	id, err := s.store.Save(header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	s.logger.Info().Str("video", id).Int64("bytes", header.Size).Msg("video uploaded")
	respond(c, types.UploadedVideo{FileName: id})
}

// handleEdit renders a one-off overlay list onto an uploaded video and
// answers once the output is written.
func (s *Server) handleEdit(c *gin.Context) {
	var req types.EditVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.VideoID == "" {
		respondStatus(c, http.StatusBadRequest, "videoId is required", string(types.ErrorKindInvalidOperation))
		return
	}

	inputPath, err := s.store.Resolve(req.VideoID)
	if err != nil {
		respondStatus(c, http.StatusNotFound, "Video not found", string(types.ErrorKindInputNotFound))
		return
	}

	session := editor.NewSession(inputPath)
	for _, o := range req.TextOverlays {
		session.AddText(o.Operation(s.cfg.Overlay.DefaultDuration))
	}

	duration := s.duration(inputPath)
	eng, format, err := s.newEngine(inputPath, duration)
	if err != nil {
		respondError(c, err)
		return
	}

	name, outputPath := s.store.OutputPath("output", format)
	if err := export.New(session, eng, s.logger).Export(outputPath); err != nil {
		respondError(c, err)
		return
	}
	respond(c, types.EditedVideo{OutputPath: name})
}
