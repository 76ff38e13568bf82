package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

// FilterController exposes the per-session pizza query
type FilterController struct {
	shop *pizzeria.Pizzeria
}

func NewFilterController(shop *pizzeria.Pizzeria) *FilterController {
	return &FilterController{shop: shop}
}

// setFiltersRequest adds clauses to the session query; absent fields leave
// their clause untouched and an empty type clears the type clause
type setFiltersRequest struct {
	Type        *string          `json:"type"`
	Ingredients []string         `json:"ingredients"`
	MaxPrice    *decimal.Decimal `json:"max_price"`
}

// GetFilters godoc
// @Summary Current filters
// @Tags filters
// @Produce json
// @Success 200 {object} models.FilterSet
// @Security BearerAuth
// @Router /api/v1/client/filters [get]
func (fc *FilterController) GetFilters(c *gin.Context) {
	filters, err := fc.shop.Filters(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

// SetFilters godoc
// @Summary Add filter clauses
// @Description Ingredients accumulate across calls; unknown ingredients and non-positive prices are ignored
// @Tags filters
// @Accept json
// @Produce json
// @Param filters body setFiltersRequest true "Clauses"
// @Success 200 {object} models.FilterSet
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/filters [put]
func (fc *FilterController) SetFilters(c *gin.Context) {
	var req setFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sessionID := middleware.SessionID(c)
	if req.Type != nil {
		kind := models.PizzaType("")
		if *req.Type != "" {
			kind, _ = models.ParsePizzaType(*req.Type)
		}
		if err := fc.shop.SetTypeFilter(sessionID, kind); err != nil {
			respondError(c, err)
			return
		}
	}
	if len(req.Ingredients) > 0 {
		if err := fc.shop.SetIngredientFilter(sessionID, req.Ingredients...); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.MaxPrice != nil {
		if err := fc.shop.SetMaxPriceFilter(sessionID, *req.MaxPrice); err != nil {
			respondError(c, err)
			return
		}
	}
	fc.GetFilters(c)
}

// ApplyFilters godoc
// @Summary Pizzas matching the filters
// @Tags filters
// @Produce json
// @Success 200 {array} models.Pizza
// @Security BearerAuth
// @Router /api/v1/client/filters/pizzas [get]
func (fc *FilterController) ApplyFilters(c *gin.Context) {
	pizzas, err := fc.shop.ApplyFilters(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pizzas)
}

// ClearFilters godoc
// @Summary Clear every filter
// @Tags filters
// @Success 204
// @Security BearerAuth
// @Router /api/v1/client/filters [delete]
func (fc *FilterController) ClearFilters(c *gin.Context) {
	if err := fc.shop.ClearFilters(middleware.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
