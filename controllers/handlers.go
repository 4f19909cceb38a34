package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Omthube23/fastapi-elk-project/middleware"
	"github.com/Omthube23/fastapi-elk-project/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	welcomeMessage  = "Welcome to the items service with ELK Stack"
	itemNotFound    = "Item not found"
	internalFailure = "Internal server error"
)

// Handler holds the application's dependencies, making them explicit.
type Handler struct {
	Store services.ItemStore
	Log   *zap.Logger
	// Now is the clock used for response timestamps.
	Now func() time.Time
}

// NewHandler creates a new handler with its dependencies.
func NewHandler(store services.ItemStore, log *zap.Logger) *Handler {
	return &Handler{
		Store: store,
		Log:   log,
		Now:   time.Now,
	}
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID, middleware.AccessLog(h.Log), gin.Recovery())

	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	router.POST("/items/", h.CreateItem)
	router.GET("/items/", h.ListItems)
	router.GET("/items/:id", h.GetItem)
	router.DELETE("/items/:id", h.DeleteItem)

	router.GET("/logs/test", h.TestLogs)

	return router
}

func (h *Handler) Root(c *gin.Context) {
	h.logger(c).Info("Root endpoint accessed")
	c.JSON(http.StatusOK, gin.H{
		"message":   welcomeMessage,
		"timestamp": h.Now(),
	})
}

func (h *Handler) Health(c *gin.Context) {
	h.logger(c).Info("Health check endpoint accessed")
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.Now(),
	})
}

// TestLogs emits one line at every level so the log pipeline can be checked end to end.
func (h *Handler) TestLogs(c *gin.Context) {
	log := h.logger(c)
	log.Debug("This is a DEBUG message")
	log.Info("This is an INFO message")
	log.Warn("This is a WARNING message")
	log.Error("This is an ERROR message")
	c.JSON(http.StatusOK, gin.H{"message": "Various log levels generated"})
}

// ## Helper Methods

func (h *Handler) jsonError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": message})
}

// logger returns the handler's logger tagged with the current request id.
func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return h.Log.With(zap.String("request_id", middleware.GetRequestID(c)))
}

var errInvalidID = errors.New("invalid item id")

// parseID accepts any base-10 integer. Integers no item can carry, negative
// or too large, report services.ErrItemNotFound rather than errInvalidID.
func (h *Handler) parseID(idStr string) (uint, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, services.ErrItemNotFound
	}
	if err != nil {
		return 0, errInvalidID
	}
	if id < 0 || uint64(id) > uint64(^uint(0)) {
		return 0, services.ErrItemNotFound
	}
	return uint(id), nil
}
