package readings

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/repository"
	readingUsecase "github.com/hachimada/soothsayer/internal/usecases/reading"
)

const (
	defaultPendingLimit = 20
	maxPendingLimit     = 100
	voiceURLTTL         = 15 * time.Minute
)

// Controller операционная ручка над гаданиями: список готовых к проигрыванию,
// выдача ссылки на голос, пометка "проиграно"
type Controller struct {
	ReadingService *readingUsecase.Service
	Log            *slog.Logger
}

func New(readingService *readingUsecase.Service, log *slog.Logger) *Controller {
	return &Controller{
		ReadingService: readingService,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/readings")
	group.GET("/pending", c.listPending)
	group.GET("/:platform/:message_id/voice", c.voiceURL)
	group.POST("/:platform/:message_id/played", c.markPlayed)
}

// listPending возвращает гадания с готовым голосом, ещё не проигранные
func (c *Controller) listPending(ctx *gin.Context) {
	limit := defaultPendingLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if parsed > maxPendingLimit {
			parsed = maxPendingLimit
		}
		limit = parsed
	}

	states, err := c.ReadingService.PendingPlayback(ctx.Request.Context(), limit)
	if err != nil {
		c.Log.Error("failed to list pending readings", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pending readings"})
		return
	}

	if states == nil {
		states = []*domain.ReadingState{}
	}
	ctx.JSON(http.StatusOK, gin.H{"readings": states})
}

// voiceURL выдаёт временную ссылку на голосовой файл гадания
func (c *Controller) voiceURL(ctx *gin.Context) {
	ref, ok := c.refFromPath(ctx)
	if !ok {
		return
	}

	state, err := c.ReadingService.ReadingRepo.GetByRef(ctx.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "reading not found"})
			return
		}
		c.Log.Error("failed to load reading", "error", err, "ref", ref.String())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reading"})
		return
	}

	if !state.HasVoice() {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "voice is not ready"})
		return
	}

	if c.ReadingService.VoiceStorage == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "voice storage is not configured"})
		return
	}

	url, err := c.ReadingService.VoiceStorage.GetPresignedURL(ctx.Request.Context(), state.ResultVoicePath, voiceURLTTL)
	if err != nil {
		c.Log.Error("failed to presign voice url",
			"error", err,
			"ref", ref.String(),
			"voice_path", state.ResultVoicePath,
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to presign voice url"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": voiceURLTTL.String(),
	})
}

// markPlayed помечает гадание проигранным
func (c *Controller) markPlayed(ctx *gin.Context) {
	ref, ok := c.refFromPath(ctx)
	if !ok {
		return
	}

	if err := c.ReadingService.MarkPlayed(ctx.Request.Context(), ref); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "reading not found"})
			return
		}
		c.Log.Error("failed to mark reading as played", "error", err, "ref", ref.String())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark reading as played"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// refFromPath собирает MessageRef из path-параметров
func (c *Controller) refFromPath(ctx *gin.Context) (domain.MessageRef, bool) {
	platform := domain.Platform(ctx.Param("platform"))
	if !platform.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid platform"})
		return domain.MessageRef{}, false
	}

	messageID := ctx.Param("message_id")
	if messageID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "message_id is required"})
		return domain.MessageRef{}, false
	}

	return domain.MessageRef{
		Platform: platform,
		ID:       domain.MessageID(messageID),
	}, true
}
