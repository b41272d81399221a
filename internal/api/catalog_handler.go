package api

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler serves the shared equipment and location catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- DTOs ---

type CreateEquipmentRequest struct {
	Name       string `json:"name"`
	CustomName string `json:"customName"`
	Category   string `json:"category"`
}

type EquipmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	CustomName  string `json:"customName,omitempty"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
}

type CreateLocationRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	Address      string   `json:"address"`
	EquipmentIDs []string `json:"equipmentIds"`
}

type LocationResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Category  string              `json:"category"`
	Address   string              `json:"address,omitempty"`
	Equipment []EquipmentResponse `json:"equipment,omitempty"`
}

func MapEquipmentToResponse(e *domain.Equipment) EquipmentResponse {
	if e == nil {
		return EquipmentResponse{}
	}
	return EquipmentResponse{
		ID:          e.ID.Hex(),
		Name:        e.Name,
		CustomName:  e.CustomName,
		DisplayName: e.DisplayName(),
		Category:    e.Category,
	}
}

func MapEquipmentListToResponse(items []domain.Equipment) []EquipmentResponse {
	resp := make([]EquipmentResponse, len(items))
	for i := range items {
		resp[i] = MapEquipmentToResponse(&items[i])
	}
	return resp
}

func MapLocationToResponse(l *domain.Location, equipment []domain.Equipment) LocationResponse {
	if l == nil {
		return LocationResponse{}
	}
	resp := LocationResponse{
		ID:       l.ID.Hex(),
		Name:     l.Name,
		Category: l.Category,
		Address:  l.Address,
	}
	if equipment != nil {
		resp.Equipment = MapEquipmentListToResponse(equipment)
	}
	return resp
}

// --- Handler Methods ---

// ListEquipment godoc
// @Summary List the equipment catalog
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} EquipmentResponse
// @Router /equipment [get]
func (h *CatalogHandler) ListEquipment(c *gin.Context) {
	items, err := h.catalogService.ListEquipment(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve equipment.")
		return
	}
	c.JSON(http.StatusOK, MapEquipmentListToResponse(items))
}

// CreateEquipment godoc
// @Summary Add equipment to the catalog (admin)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param equipment body CreateEquipmentRequest true "Canonical or custom name"
// @Success 201 {object} EquipmentResponse
// @Failure 409 {object} gin.H "Equipment already exists"
// @Router /equipment [post]
func (h *CatalogHandler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	e, err := h.catalogService.CreateEquipment(c.Request.Context(), req.Name, req.CustomName, req.Category)
	if err != nil {
		respondServiceError(c, err, "Failed to create equipment.")
		return
	}
	c.JSON(http.StatusCreated, MapEquipmentToResponse(e))
}

// ListLocations godoc
// @Summary List workout locations
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LocationResponse
// @Router /locations [get]
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.catalogService.ListLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve locations.")
		return
	}
	resp := make([]LocationResponse, len(locations))
	for i := range locations {
		resp[i] = MapLocationToResponse(&locations[i], nil)
	}
	c.JSON(http.StatusOK, resp)
}

// GetLocation godoc
// @Summary Get a location with its equipment
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param locationId path string true "Location ObjectID Hex"
// @Success 200 {object} LocationResponse
// @Failure 404 {object} gin.H "Location not found"
// @Router /locations/{locationId} [get]
func (h *CatalogHandler) GetLocation(c *gin.Context) {
	id, ok := pathObjectID(c, "locationId")
	if !ok {
		return
	}
	detail, err := h.catalogService.GetLocation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve location.")
		return
	}
	c.JSON(http.StatusOK, MapLocationToResponse(&detail.Location, nonNilEquipment(detail.Equipment)))
}

// CreateLocation godoc
// @Summary Add a location (admin)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location body CreateLocationRequest true "Location details"
// @Success 201 {object} LocationResponse
// @Router /locations [post]
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ids := make([]primitive.ObjectID, 0, len(req.EquipmentIDs))
	for _, hex := range req.EquipmentIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid equipment ID format: "+hex)
			return
		}
		ids = append(ids, id)
	}

	detail, err := h.catalogService.CreateLocation(c.Request.Context(), req.Name, req.Category, req.Address, ids)
	if err != nil {
		respondServiceError(c, err, "Failed to create location.")
		return
	}
	c.JSON(http.StatusCreated, MapLocationToResponse(&detail.Location, nonNilEquipment(detail.Equipment)))
}

func nonNilEquipment(items []domain.Equipment) []domain.Equipment {
	if items == nil {
		return []domain.Equipment{}
	}
	return items
}
