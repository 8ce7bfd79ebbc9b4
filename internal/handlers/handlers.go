package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/ai-editor/internal/editor"
	"github.com/example/ai-editor/internal/imagedata"
	"github.com/example/ai-editor/internal/logging"
	"github.com/example/ai-editor/internal/usecase"
)

// MaxUploadSize is the default per-image upload limit.
const MaxUploadSize = 10 << 20

// multipartOverhead leaves room for form boundaries and headers on top of the
// image bytes themselves.
const multipartOverhead = 1 << 20

// DownloadPrefix starts every downloaded file name.
const DownloadPrefix = "ai-edit-"

//go:embed templates
var templateFiles embed.FS

// Options tunes the routes. Zero values fall back to defaults.
type Options struct {
	MaxUploadBytes int64
	Logger         *zap.Logger
	Now            func() time.Time
}

type modeForm struct {
	Mode string `form:"mode" json:"mode" binding:"required"`
}

type angleForm struct {
	Angle string `form:"angle" json:"angle" binding:"required"`
}

type routes struct {
	session   *usecase.Session
	maxUpload int64
	logger    *zap.Logger
	now       func() time.Time
}

// RegisterRoutes wires the editor page and its API onto the Gin router.
func RegisterRoutes(router *gin.Engine, session *usecase.Session, opts Options) {
	h := &routes{
		session:   session,
		maxUpload: opts.MaxUploadBytes,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if h.maxUpload <= 0 {
		h.maxUpload = MaxUploadSize
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	h.logger = h.logger.Named("handlers")
	if h.now == nil {
		h.now = time.Now
	}

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFiles, "templates/*.html")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", h.index)
	router.GET("/api/state", h.state)
	router.POST("/mode", h.setMode)
	router.POST("/angle", h.setAngle)
	router.POST("/images/base", h.upload(session.SetBaseImage))
	router.POST("/images/reference", h.upload(session.SetReferenceImage))
	router.POST("/images/clear", h.clearImages)
	router.POST("/process", h.process)
	router.GET("/download/:id", h.download)
}

func (h *routes) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", buildPage(h.session.Snapshot()))
}

func (h *routes) state(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

func (h *routes) setMode(c *gin.Context) {
	var form modeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
		return
	}
	mode, err := editor.ParseMode(form.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondState(c, http.StatusOK, h.session.SetMode(mode))
}

func (h *routes) setAngle(c *gin.Context) {
	var form angleForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "angle is required"})
		return
	}
	angle, err := editor.ParseCameraAngle(form.Angle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondState(c, http.StatusOK, h.session.SetCameraAngle(angle))
}

func (h *routes) clearImages(c *gin.Context) {
	respondState(c, http.StatusOK, h.session.ClearImages())
}

// upload reads the multipart "image" field, checks it is an image within the
// size limit and stores it as a data URL through set.
func (h *routes) upload(set func(string) usecase.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartOverhead)

		file, err := c.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if file.Size > h.maxUpload {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is too large"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to open image"})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
			return
		}

		handle, err := imagedata.Encode(data)
		if err != nil {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only image uploads are supported"})
			return
		}
		respondState(c, http.StatusOK, set(handle))
	}
}

func (h *routes) process(c *gin.Context) {
	result, err := h.session.Process(c.Request.Context())
	state := h.session.Snapshot()

	var validationErr *usecase.ValidationError
	switch {
	case err == nil:
		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"result": result, "state": state})
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	case errors.As(err, &validationErr):
		respondState(c, http.StatusUnprocessableEntity, state)
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		if wantsJSON(c) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": state})
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	default:
		h.logger.Warn("processing failed", logging.Fields(err)...)
		respondState(c, http.StatusBadGateway, state)
	}
}

func (h *routes) download(c *gin.Context) {
	result, ok := h.session.Result(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}

	mimeType, data, err := imagedata.Decode(result.ProcessedURL)
	if err != nil {
		h.logger.Error("stored result is not a data URL", zap.String("result_id", result.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "result image is unreadable"})
		return
	}

	filename := fmt.Sprintf("%s%d%s", DownloadPrefix, h.now().UnixMilli(), imagedata.Extension(mimeType))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mimeType, data)
}

// respondState answers API clients with the state as JSON and sends browsers
// back to the page, which renders the same state.
func respondState(c *gin.Context, status int, state usecase.State) {
	if wantsJSON(c) {
		c.JSON(status, state)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEJSON
}
