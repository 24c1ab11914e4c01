package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"poinku/internal/middleware"
	"poinku/internal/models"
	"poinku/internal/repository"
	"poinku/internal/worker"
	"poinku/pkg/youtube"

	"github.com/gin-gonic/gin"
)

// ChatResolver resolves a video's live chat ID. Satisfied by *youtube.Client.
type ChatResolver interface {
	LiveChatID(ctx context.Context, videoID string) (string, error)
}

// LivestreamHandler is the admin surface for registered broadcasts and the
// chat reward worker.
type LivestreamHandler struct {
	streamRepo *repository.LivestreamRepository
	auditRepo  *repository.AuditLogRepository
	resolver   ChatResolver
	manager    *worker.Manager
}

func NewLivestreamHandler(
	streamRepo *repository.LivestreamRepository,
	auditRepo *repository.AuditLogRepository,
	resolver ChatResolver,
	manager *worker.Manager,
) *LivestreamHandler {
	return &LivestreamHandler{
		streamRepo: streamRepo,
		auditRepo:  auditRepo,
		resolver:   resolver,
		manager:    manager,
	}
}

func (h *LivestreamHandler) List(c *gin.Context) {
	streams, err := h.streamRepo.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streams": streams})
}

type CreateStreamRequest struct {
	Title   string `json:"title" binding:"required"`
	VideoID string `json:"video_id" binding:"required"`
}

// Create registers a broadcast as the active one. The live chat ID is
// resolved up front when possible; otherwise the worker retries.
func (h *LivestreamHandler) Create(c *gin.Context) {
	var req CreateStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	liveChatID := ""
	if h.resolver != nil {
		id, err := h.resolver.LiveChatID(c.Request.Context(), req.VideoID)
		switch {
		case err == nil:
			liveChatID = id
		case errors.Is(err, youtube.ErrVideoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, youtube.ErrNotLive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		default:
			log.Printf("[stream] resolve live chat for %s: %v", req.VideoID, err)
		}
	}
	stream := &models.Livestream{
		Title:      req.Title,
		VideoID:    req.VideoID,
		LiveChatID: liveChatID,
	}
	if err := h.streamRepo.CreateActive(stream); err != nil {
		respondError(c, err)
		return
	}
	_ = h.auditRepo.Append(middleware.GetUserID(c), "register_stream",
		fmt.Sprintf("stream %d (%s)", stream.ID, req.VideoID))
	c.JSON(http.StatusCreated, stream)
}

func (h *LivestreamHandler) Finish(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stream id"})
		return
	}
	if err := h.streamRepo.Finish(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stream finished"})
}

// WorkerStatus reports whether the polling loop is running.
func (h *LivestreamHandler) WorkerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.manager.Status()})
}

func (h *LivestreamHandler) WorkerStart(c *gin.Context) {
	started := h.manager.Start()
	_ = h.auditRepo.Append(middleware.GetUserID(c), "worker_start", "chat reward worker")
	c.JSON(http.StatusOK, gin.H{"status": h.manager.Status(), "changed": started})
}

func (h *LivestreamHandler) WorkerStop(c *gin.Context) {
	stopped := h.manager.Stop()
	_ = h.auditRepo.Append(middleware.GetUserID(c), "worker_stop", "chat reward worker")
	c.JSON(http.StatusOK, gin.H{"status": h.manager.Status(), "changed": stopped})
}
