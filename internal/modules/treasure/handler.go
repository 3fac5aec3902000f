package treasure

import (
	"errors"
	"strings"

	"github.com/cryptohunter/core/internal/modules/puzzle"
	"github.com/cryptohunter/core/internal/pkg/commit"
	"github.com/cryptohunter/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-treasure-map", h.createTreasureMap)
	rg.POST("/commit-hash", h.commitHash)
}

type commitHashDTO struct {
	Answer  string `json:"answer"  binding:"required"`
	Address string `json:"address" binding:"required"`
	Salt    string `json:"salt"`
}

type commitHashResult struct {
	Salt       string `json:"salt"`
	CommitHash string `json:"commit_hash"`
	AnswerHash string `json:"answer_hash"`
}

// POST /api/create-treasure-map
func (h *Handler) createTreasureMap(c *gin.Context) {
	var req puzzle.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	result, err := h.svc.CreateTreasureMap(c.Request.Context(), req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// POST /api/commit-hash
// A missing salt is generated and returned so the client can reveal it later.
func (h *Handler) commitHash(c *gin.Context) {
	var dto commitHashDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if !commit.ValidateAddressFormat(dto.Address) {
		response.BadRequest(c, "invalid address: expected 0x followed by 40 hex digits")
		return
	}

	salt := strings.TrimSpace(dto.Salt)
	if salt == "" {
		generated, err := commit.GenerateSalt()
		if err != nil {
			response.InternalError(c, err)
			return
		}
		salt = generated
	}

	hash, err := commit.GenerateCommitHash(dto.Answer, salt, dto.Address)
	if err != nil {
		var verr *commit.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, commitHashResult{
		Salt:       salt,
		CommitHash: hash,
		AnswerHash: commit.HashAnswer(dto.Answer),
	})
}
