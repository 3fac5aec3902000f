package puzzle

import (
	"github.com/cryptohunter/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-puzzle", h.generatePuzzle)
	rg.POST("/generate-image", h.generateImage)
	rg.POST("/validate-answer", h.validateAnswer)
}

// POST /api/generate-puzzle
func (h *Handler) generatePuzzle(c *gin.Context) {
	var req GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	record, err := h.svc.GeneratePuzzle(c.Request.Context(), req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, record)
}

// POST /api/generate-image
func (h *Handler) generateImage(c *gin.Context) {
	var dto generateImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	url, err := h.svc.GenerateImage(c.Request.Context(), dto.Description, dto.Style)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"image_url": url})
}

// POST /api/validate-answer
func (h *Handler) validateAnswer(c *gin.Context) {
	var dto validateAnswerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, h.svc.ValidateAnswer(c.Request.Context(), dto.Question, dto.UserAnswer, dto.CorrectAnswer))
}
