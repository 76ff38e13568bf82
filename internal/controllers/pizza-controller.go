package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

// PizzaController handles HTTP requests on the catalog
type PizzaController interface {
	// GetAllPizzas lists the catalog
	GetAllPizzas(c *gin.Context)
	// GetPizza retrieves a pizza by name
	GetPizza(c *gin.Context)
	// CreatePizza adds an empty pizza
	CreatePizza(c *gin.Context)
	// AddIngredient puts an ingredient on a pizza
	AddIngredient(c *gin.Context)
	// RemoveIngredient takes an ingredient off a pizza
	RemoveIngredient(c *gin.Context)
	// ListForbidden lists the ingredients of a pizza banned for its type
	ListForbidden(c *gin.Context)
	// GetPrice returns the minimum, fixed and sale price of a pizza
	GetPrice(c *gin.Context)
	// SetPrice fixes the sale price of a pizza
	SetPrice(c *gin.Context)
	// AttachPhoto sets the photo of a pizza
	AttachPhoto(c *gin.Context)
	// GetIngredients lists the ingredients
	GetIngredients(c *gin.Context)
	// CreateIngredient adds an ingredient
	CreateIngredient(c *gin.Context)
	// SetIngredientPrice changes the price of an ingredient
	SetIngredientPrice(c *gin.Context)
	// ForbidIngredient bans an ingredient for a pizza type
	ForbidIngredient(c *gin.Context)
}

type controller struct {
	shop *pizzeria.Pizzeria
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(shop *pizzeria.Pizzeria) PizzaController {
	return &controller{shop: shop}
}

type createPizzaRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type ingredientRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

type priceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type pizzaIngredientRequest struct {
	Ingredient string `json:"ingredient" binding:"required"`
}

type forbidRequest struct {
	Type string `json:"type" binding:"required"`
}

type photoRequest struct {
	Path string `json:"path" binding:"required"`
}

type priceResponse struct {
	Pizza        string           `json:"pizza"`
	MinimumPrice decimal.Decimal  `json:"minimum_price"`
	FixedPrice   *decimal.Decimal `json:"fixed_price,omitempty"`
	SalePrice    decimal.Decimal  `json:"sale_price"`
}

func parseType(c *gin.Context, raw string) (models.PizzaType, bool) {
	kind, ok := models.ParsePizzaType(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "unknown pizza type",
			map[string]interface{}{"type": raw, "allowed": models.PizzaTypes}))
	}
	return kind, ok
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get the catalog sorted by name
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.Pizza
// @Router /api/v1/public/pizzas [get]
func (pc *controller) GetAllPizzas(c *gin.Context) {
	c.JSON(http.StatusOK, pc.shop.Pizzas())
}

// GetPizza godoc
// @Summary Get pizza by name
// @Tags pizzas
// @Produce json
// @Param name path string true "Pizza name"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{name} [get]
func (pc *controller) GetPizza(c *gin.Context) {
	pizza, err := pc.shop.Pizza(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pizza)
}

// CreatePizza godoc
// @Summary Create a pizza
// @Description Create a pizza with no ingredients and no fixed price
// @Tags catalog
// @Accept json
// @Produce json
// @Param pizza body createPizzaRequest true "Pizza name and type"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas [post]
func (pc *controller) CreatePizza(c *gin.Context) {
	var req createPizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	kind, ok := parseType(c, req.Type)
	if !ok {
		return
	}

	pizza, err := pc.shop.CreatePizza(req.Name, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pizza)
}

// AddIngredient godoc
// @Summary Add an ingredient to a pizza
// @Tags catalog
// @Accept json
// @Produce json
// @Param name path string true "Pizza name"
// @Param ingredient body pizzaIngredientRequest true "Ingredient"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas/{name}/ingredients [post]
func (pc *controller) AddIngredient(c *gin.Context) {
	var req pizzaIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	name := c.Param("name")
	if err := pc.shop.AddIngredientToPizza(name, req.Ingredient); err != nil {
		respondError(c, err)
		return
	}
	pc.respondPizza(c, name)
}

// RemoveIngredient godoc
// @Summary Remove an ingredient from a pizza
// @Tags catalog
// @Produce json
// @Param name path string true "Pizza name"
// @Param ingredient path string true "Ingredient name"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas/{name}/ingredients/{ingredient} [delete]
func (pc *controller) RemoveIngredient(c *gin.Context) {
	name := c.Param("name")
	if err := pc.shop.RemoveIngredientFromPizza(name, c.Param("ingredient")); err != nil {
		respondError(c, err)
		return
	}
	pc.respondPizza(c, name)
}

func (pc *controller) respondPizza(c *gin.Context, name string) {
	pizza, err := pc.shop.Pizza(name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pizza)
}

// ListForbidden godoc
// @Summary Forbidden ingredients of a pizza
// @Description List the ingredients on a pizza that are forbidden for its type
// @Tags catalog
// @Produce json
// @Param name path string true "Pizza name"
// @Success 200 {array} string
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas/{name}/forbidden [get]
func (pc *controller) ListForbidden(c *gin.Context) {
	names, err := pc.shop.ListForbiddenIngredients(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// GetPrice godoc
// @Summary Prices of a pizza
// @Tags catalog
// @Produce json
// @Param name path string true "Pizza name"
// @Success 200 {object} priceResponse
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas/{name}/price [get]
func (pc *controller) GetPrice(c *gin.Context) {
	pizza, err := pc.shop.Pizza(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	minimum, err := pc.shop.MinimumPrice(pizza.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, priceResponse{
		Pizza:        pizza.Name,
		MinimumPrice: minimum,
		FixedPrice:   pizza.FixedPrice,
		SalePrice:    pizza.SalePrice,
	})
}

// SetPrice godoc
// @Summary Fix the sale price of a pizza
// @Description The price may not be below the minimum price
// @Tags catalog
// @Accept json
// @Produce json
// @Param name path string true "Pizza name"
// @Param price body priceRequest true "Sale price"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas/{name}/price [put]
func (pc *controller) SetPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	name := c.Param("name")
	if err := pc.shop.SetFixedPrice(name, req.Price); err != nil {
		respondError(c, err)
		return
	}
	pc.respondPizza(c, name)
}

// AttachPhoto godoc
// @Summary Attach a photo to a pizza
// @Description The path must name an existing image file
// @Tags catalog
// @Accept json
// @Produce json
// @Param name path string true "Pizza name"
// @Param photo body photoRequest true "Photo path"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/pizzas/{name}/photo [put]
func (pc *controller) AttachPhoto(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	name := c.Param("name")
	if err := pc.shop.AttachPhoto(name, req.Path); err != nil {
		respondError(c, err)
		return
	}
	pc.respondPizza(c, name)
}

// GetIngredients godoc
// @Summary List ingredients
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Ingredient
// @Security BearerAuth
// @Router /api/v1/staff/ingredients [get]
func (pc *controller) GetIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, pc.shop.Ingredients())
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Tags catalog
// @Accept json
// @Produce json
// @Param ingredient body ingredientRequest true "Name and price"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/ingredients [post]
func (pc *controller) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := pc.shop.CreateIngredient(req.Name, req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Ingredient{Name: req.Name, Price: req.Price})
}

// SetIngredientPrice godoc
// @Summary Change an ingredient price
// @Description Every pizza using the ingredient is repriced
// @Tags catalog
// @Accept json
// @Produce json
// @Param name path string true "Ingredient name"
// @Param price body priceRequest true "New price"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/ingredients/{name}/price [put]
func (pc *controller) SetIngredientPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	name := c.Param("name")
	if err := pc.shop.SetIngredientPrice(name, req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Ingredient{Name: name, Price: req.Price})
}

// ForbidIngredient godoc
// @Summary Forbid an ingredient for a pizza type
// @Description Existing pizzas are left untouched; use the forbidden listing to find them
// @Tags catalog
// @Accept json
// @Produce json
// @Param name path string true "Ingredient name"
// @Param rule body forbidRequest true "Pizza type"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/ingredients/{name}/forbid [post]
func (pc *controller) ForbidIngredient(c *gin.Context) {
	var req forbidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	// An unknown type is rejected by the shop as not found
	kind, _ := models.ParsePizzaType(req.Type)
	added, err := pc.shop.ForbidIngredient(c.Param("name"), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": c.Param("name"), "type": kind, "added": added})
}
