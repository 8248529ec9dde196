// server/internal/api/handlers/retrieval_handler.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"waste-retrieval-api-server/internal/api/middleware"
	"waste-retrieval-api-server/internal/models"
	"waste-retrieval-api-server/internal/report"
	"waste-retrieval-api-server/internal/retrieval"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/op/go-logging"
)

// Broadcaster pushes a message to every live dashboard. *socket.Hub implements it.
type Broadcaster interface {
	Broadcast(message []byte)
}

// ReportUploader stores an export file. *s3.Uploader implements it.
type ReportUploader interface {
	UploadFile(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error)
}

type RetrievalHandler struct {
	Service  *retrieval.Service
	Hub      Broadcaster
	Uploader ReportUploader // nil khi chưa cấu hình S3
	Log      *logging.Logger
}

// QRScanRequest is the body of POST /qr-scan.
type QRScanRequest struct {
	QRData    string `json:"qrData"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// RetrievalEvent is what dashboards receive over the websocket.
type RetrievalEvent struct {
	Event string               `json:"event"`
	Data  models.RetrievalView `json:"data"`
}

const (
	msgMissingFields = "Missing required fields"
	msgInvalidQR     = "Invalid QR code format"
	msgSubmitFailed  = "Failed to record waste retrieval"
	defaultUserEmail = "unknown"
)

// SubmitQRScan ghi nhận một lần thu gom rác từ dữ liệu QR đã quét.
func (h *RetrievalHandler) SubmitQRScan(c *gin.Context) {
	var req QRScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	// Identity from a verified token wins over the body.
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		userID = req.UserID
	}
	userEmail := c.GetString(middleware.ContextUserEmail)
	if userEmail == "" {
		userEmail = req.UserEmail
	}
	if userEmail == "" {
		userEmail = defaultUserEmail
	}

	if req.QRData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msgMissingFields})
		return
	}
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": msgMissingFields})
		return
	}

	rec, err := h.Service.SubmitRaw(c.Request.Context(), req.QRData, userID, userEmail)
	if err != nil {
		status, message := submitErrorResponse(err)
		c.JSON(status, gin.H{"success": false, "error": message})
		return
	}

	h.broadcast(rec)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"documentId": rec.ID,
		"message":    fmt.Sprintf("Successfully recorded %s waste retrieval at %s", rec.WasteType, rec.Location),
	})
}

func submitErrorResponse(err error) (int, string) {
	var dupErr *retrieval.DuplicateSubmissionError
	switch {
	case errors.Is(err, retrieval.ErrInvalidPayload):
		return http.StatusBadRequest, msgInvalidQR
	case errors.Is(err, retrieval.ErrUnauthenticated):
		return http.StatusUnauthorized, msgMissingFields
	case errors.As(err, &dupErr):
		return http.StatusConflict, dupErr.Error()
	default:
		return http.StatusInternalServerError, msgSubmitFailed
	}
}

func (h *RetrievalHandler) broadcast(rec models.RetrievalRecord) {
	if h.Hub == nil {
		return
	}
	message, err := json.Marshal(RetrievalEvent{Event: "retrieval.created", Data: h.Service.View(rec)})
	if err != nil {
		h.Log.Errorf("Failed to encode retrieval event: %v", err)
		return
	}
	h.Hub.Broadcast(message)
}

// parseTypeFilter đọc query "type": rỗng hoặc "all" nghĩa là không lọc.
func parseTypeFilter(c *gin.Context) (models.WasteType, bool) {
	filter := c.Query("type")
	if filter == "" || filter == "all" {
		return "", true
	}
	return models.ParseWasteType(filter)
}

// ListRetrievals trả về lịch sử thu gom, mới nhất trước.
func (h *RetrievalHandler) ListRetrievals(c *gin.Context) {
	wasteType, ok := parseTypeFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown waste type filter"})
		return
	}

	views := retrieval.FilterByType(h.Service.Recent(c.Request.Context()), wasteType)
	c.JSON(http.StatusOK, views)
}

// ExportRetrievals uploads the (optionally filtered) history as CSV and returns its URL.
func (h *RetrievalHandler) ExportRetrievals(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Export storage is not configured"})
		return
	}
	wasteType, ok := parseTypeFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown waste type filter"})
		return
	}

	views, err := h.Service.History(c.Request.Context())
	if err != nil {
		h.Log.Errorf("Export failed to read history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read retrieval history"})
		return
	}
	views = retrieval.FilterByType(views, wasteType)

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, views); err != nil {
		h.Log.Errorf("Export failed to render CSV: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	filterName := "all"
	if wasteType != "" {
		filterName = string(wasteType)
	}
	key := report.ObjectKey(time.Now(), filterName, uuid.New().String()[:8])
	url, err := h.Uploader.UploadFile(c.Request.Context(), bytes.NewReader(buf.Bytes()), key, report.ContentType)
	if err != nil {
		h.Log.Errorf("Export upload of %s failed: %v", key, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload export"})
		return
	}

	h.Log.Infof("Exported %d retrievals to %s", len(views), key)
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"key":    key,
		"url":    url,
		"count":  len(views),
	})
}
