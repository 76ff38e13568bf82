package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

// EvaluationController handles pizza ratings
type EvaluationController struct {
	shop *pizzeria.Pizzeria
}

func NewEvaluationController(shop *pizzeria.Pizzeria) *EvaluationController {
	return &EvaluationController{shop: shop}
}

type evaluationRequest struct {
	Pizza   string `json:"pizza" binding:"required"`
	Note    int    `json:"note"`
	Comment string `json:"comment"`
}

// AddEvaluation godoc
// @Summary Rate a pizza
// @Description The client must have validated an order containing the pizza. A note outside 0..5 or a second rating is refused.
// @Tags evaluations
// @Accept json
// @Produce json
// @Param evaluation body evaluationRequest true "Pizza, note and comment"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/evaluations [post]
func (ec *EvaluationController) AddEvaluation(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	added, err := ec.shop.AddEvaluation(middleware.SessionID(c), req.Pizza, req.Note, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	if !added {
		c.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrValidationFailed,
			"evaluation refused: note out of range or pizza already rated"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pizza": req.Pizza, "note": req.Note, "added": true})
}

// ListEvaluations godoc
// @Summary Evaluations of a pizza
// @Tags evaluations
// @Produce json
// @Param name path string true "Pizza name"
// @Success 200 {array} models.Evaluation
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{name}/evaluations [get]
func (ec *EvaluationController) ListEvaluations(c *gin.Context) {
	evaluations, err := ec.shop.ListEvaluations(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluations)
}

// AverageNote godoc
// @Summary Average note of a pizza
// @Description -2 for an unknown pizza, -1 when nobody rated it
// @Tags evaluations
// @Produce json
// @Param name path string true "Pizza name"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/public/pizzas/{name}/average [get]
func (ec *EvaluationController) AverageNote(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pizza": c.Param("name"), "average": ec.shop.AverageNote(c.Param("name"))})
}
