package ipfs

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cryptohunter/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps multipart uploads held in memory.
const maxUploadBytes = 32 << 20

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-ipfs", h.uploadJSON)
	rg.POST("/upload-file", h.uploadFile)
	rg.GET("/gateway-url", h.gatewayURL)
}

type uploadJSONDTO struct {
	Content  json.RawMessage `json:"content"  binding:"required"`
	Filename string          `json:"filename"`
}

type uploadResult struct {
	IPFSURI    string `json:"ipfs_uri"`
	GatewayURL string `json:"gateway_url"`
	Provider   string `json:"provider"`
}

func (h *Handler) result(ref Reference) uploadResult {
	return uploadResult{IPFSURI: ref.URI, GatewayURL: h.svc.GatewayURL(ref.URI), Provider: ref.Provider}
}

// POST /api/upload-ipfs
func (h *Handler) uploadJSON(c *gin.Context) {
	var dto uploadJSONDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if trimmed := bytes.TrimSpace(dto.Content); len(trimmed) == 0 || trimmed[0] != '{' {
		response.UnprocessableEntity(c, "content must be a JSON object")
		return
	}

	ref, err := h.svc.UploadJSON(c.Request.Context(), dto.Content, dto.Filename)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, h.result(ref))
}

// POST /api/upload-file  multipart field "file"
func (h *Handler) uploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.UnprocessableEntity(c, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.UnprocessableEntity(c, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	ref, err := h.svc.UploadFile(c.Request.Context(), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, h.result(ref))
}

// GET /api/gateway-url?uri=ipfs://...
func (h *Handler) gatewayURL(c *gin.Context) {
	uri := c.Query("uri")
	if uri == "" {
		response.UnprocessableEntity(c, "uri is required")
		return
	}
	response.OK(c, gin.H{"url": h.svc.GatewayURL(uri)})
}
