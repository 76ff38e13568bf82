package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

// StatisticsController exposes read-only reports over the catalog and processed orders
type StatisticsController struct {
	shop *pizzeria.Pizzeria
}

func NewStatisticsController(shop *pizzeria.Pizzeria) *StatisticsController {
	return &StatisticsController{shop: shop}
}

// BenefitPerPizza godoc
// @Summary Benefit per pizza
// @Description Sale price minus minimum price for every pizza, never negative
// @Tags statistics
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/staff/statistics/benefit-per-pizza [get]
func (sc *StatisticsController) BenefitPerPizza(c *gin.Context) {
	c.JSON(http.StatusOK, sc.shop.BenefitPerPizza())
}

// TotalBenefit godoc
// @Summary Total benefit of processed orders
// @Tags statistics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/v1/staff/statistics/total-benefit [get]
func (sc *StatisticsController) TotalBenefit(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"total_benefit": sc.shop.TotalBenefit()})
}

// PizzaCountPerClient godoc
// @Summary Pizzas per client
// @Description Number of pizzas across each client's processed orders
// @Tags statistics
// @Produce json
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /api/v1/staff/statistics/pizzas-per-client [get]
func (sc *StatisticsController) PizzaCountPerClient(c *gin.Context) {
	c.JSON(http.StatusOK, sc.shop.PizzaCountPerClient())
}

// BenefitPerClient godoc
// @Summary Benefit per client
// @Tags statistics
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/staff/statistics/benefit-per-client [get]
func (sc *StatisticsController) BenefitPerClient(c *gin.Context) {
	c.JSON(http.StatusOK, sc.shop.BenefitPerClient())
}

// OrderCountForPizza godoc
// @Summary Times a pizza was ordered
// @Tags statistics
// @Produce json
// @Param name path string true "Pizza name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/statistics/pizzas/{name}/count [get]
func (sc *StatisticsController) OrderCountForPizza(c *gin.Context) {
	count, err := sc.shop.OrderCountForPizza(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pizza": c.Param("name"), "count": count})
}

// RankedPizzas godoc
// @Summary Pizzas ranked by order count
// @Tags statistics
// @Produce json
// @Success 200 {array} models.Pizza
// @Security BearerAuth
// @Router /api/v1/staff/statistics/ranking [get]
func (sc *StatisticsController) RankedPizzas(c *gin.Context) {
	c.JSON(http.StatusOK, sc.shop.PizzasRankedByOrderCount())
}
