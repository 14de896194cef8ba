package resumes

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"resumegenius-backend/internal/shared/server/respond"
	"resumegenius-backend/resume/model"
	"resumegenius-backend/resume/render"
	"resumegenius-backend/resume/service"
)

const maxBodySize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	useJSONFieldNames()
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.POST("/generate_pdf", h.generatePDF)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", bindingDetails(err))
		return
	}
	c.Set("isStudent", req.IsStudent)

	result, err := h.Svc.Analyze(c.Request.Context(), req.toInput())
	if result.GitHubOutcome != "" {
		c.Set("githubOutcome", string(result.GitHubOutcome))
	}
	if err != nil {
		writeError(c, err)
		return
	}

	respond.OK(c, result.Document)
}

func (h *Handler) generatePDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var doc model.ResumeDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", bindingDetails(err))
		return
	}

	data, err := h.Svc.Render(c.Request.Context(), doc)
	if err != nil {
		writeError(c, err)
		return
	}

	respond.Attachment(c, "application/pdf", "resume.pdf", data)
}

func writeError(c *gin.Context, err error) {
	var genErr *service.GenerationError
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNoDataSource), errors.Is(err, ErrNoUsableSource):
		respond.Error(c, http.StatusBadRequest, "no_data_source", err.Error(), nil)
	case errors.As(err, &genErr):
		code := "llm_generation_failed"
		if genErr.Kind == service.FailureValidation {
			code = "llm_structure_failed"
		}
		respond.Error(c, http.StatusBadGateway, code, genErr.Error(), gin.H{"attempts": genErr.Attempts})
	case errors.Is(err, render.ErrRender):
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render resume", err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
	}
}

func bindingDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[jsonPath(fe.Namespace())] = fe.Tag()
	}
	return fields
}

// jsonPath drops the root struct name from a validator namespace, leaving
// e.g. "manual_experience[0].company".
func jsonPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report JSON field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}
