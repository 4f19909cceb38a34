package controllers

import (
	"errors"
	"net/http"

	"github.com/Omthube23/fastapi-elk-project/models"
	"github.com/Omthube23/fastapi-elk-project/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// createItemRequest uses pointers for the numbers so an explicit 0 passes "required".
type createItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Quantity    *int     `json:"quantity" binding:"required"`
}

func (h *Handler) CreateItem(c *gin.Context) {
	log := h.logger(c)

	var body createItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Warn("Rejected item payload", zap.Error(err))
		h.jsonError(c, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}

	log.Info("Creating new item", zap.String("name", body.Name))

	item, err := h.Store.Create(c.Request.Context(), services.NewItem{
		Name:        body.Name,
		Description: body.Description,
		Price:       *body.Price,
		Quantity:    *body.Quantity,
	})
	if err != nil {
		log.Error("Could not save item", zap.Error(err))
		h.jsonError(c, http.StatusInternalServerError, internalFailure)
		return
	}

	log.Info("Item created successfully", zap.Any("item", item))
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.Store.List(c.Request.Context())
	if err != nil {
		h.logger(c).Error("Failed to fetch items", zap.Error(err))
		h.jsonError(c, http.StatusInternalServerError, internalFailure)
		return
	}

	h.logger(c).Info("Listing all items", zap.Int("count", len(items)))
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *Handler) GetItem(c *gin.Context) {
	log := h.logger(c)

	rawID := c.Param("id")
	itemID, err := h.parseID(rawID)
	if errors.Is(err, errInvalidID) {
		h.jsonError(c, http.StatusUnprocessableEntity, "Invalid item ID")
		return
	}

	log.Info("Fetching item", zap.String("item_id", rawID))

	var item models.Item
	if err == nil {
		item, err = h.Store.Get(c.Request.Context(), itemID)
	}
	if errors.Is(err, services.ErrItemNotFound) {
		log.Warn("Item not found", zap.String("item_id", rawID))
		h.jsonError(c, http.StatusNotFound, itemNotFound)
		return
	}
	if err != nil {
		log.Error("Failed to fetch item", zap.String("item_id", rawID), zap.Error(err))
		h.jsonError(c, http.StatusInternalServerError, internalFailure)
		return
	}

	log.Info("Item found", zap.Any("item", item))
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	log := h.logger(c)

	rawID := c.Param("id")
	itemID, err := h.parseID(rawID)
	if errors.Is(err, errInvalidID) {
		h.jsonError(c, http.StatusUnprocessableEntity, "Invalid item ID")
		return
	}

	log.Info("Attempting to delete item", zap.String("item_id", rawID))

	var item models.Item
	if err == nil {
		item, err = h.Store.Delete(c.Request.Context(), itemID)
	}
	if errors.Is(err, services.ErrItemNotFound) {
		log.Error("Delete failed - Item not found", zap.String("item_id", rawID))
		h.jsonError(c, http.StatusNotFound, itemNotFound)
		return
	}
	if err != nil {
		log.Error("Failed to delete item", zap.String("item_id", rawID), zap.Error(err))
		h.jsonError(c, http.StatusInternalServerError, internalFailure)
		return
	}

	log.Info("Item deleted", zap.Any("item", item))
	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted",
		"item":    item,
	})
}
