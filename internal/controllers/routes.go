package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/auth"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/middleware"
)

// Handlers groups the controllers mounted by RegisterRoutes
type Handlers struct {
	Auth        *AuthController
	Pizzas      PizzaController
	Orders      *OrderController
	Filters     *FilterController
	Evaluations *EvaluationController
	Statistics  *StatisticsController
	Clients     *ClientController
	// Token issues staff access tokens (OAuth2 token endpoint)
	Token gin.HandlerFunc
}

// RegisterRoutes mounts the public, client and staff APIs on router
func RegisterRoutes(router *gin.Engine, h Handlers, jwtSecret []byte) {
	if h.Token != nil {
		router.POST("/oauth/token", h.Token)
	}

	v1 := router.Group("/api/v1")
	{
		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", h.Auth.Register)
			authApi.POST("/login", h.Auth.Login)
		}

		publicApi := v1.Group("/public")
		{
			publicApi.GET("/pizzas", h.Pizzas.GetAllPizzas)
			publicApi.GET("/pizzas/:name", h.Pizzas.GetPizza)
			publicApi.GET("/pizzas/:name/evaluations", h.Evaluations.ListEvaluations)
			publicApi.GET("/pizzas/:name/average", h.Evaluations.AverageNote)
		}

		// Client routes require a session token from /auth/login
		clientApi := v1.Group("/client")
		clientApi.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRole(auth.RoleClient))
		{
			clientApi.POST("/logout", h.Auth.Logout)
			clientApi.GET("/me", h.Auth.Me)
			clientApi.PUT("/password", h.Auth.ChangePassword)

			clientApi.POST("/orders", h.Orders.BeginOrder)
			clientApi.GET("/orders/in-progress", h.Orders.OrdersInProgress)
			clientApi.GET("/orders/past", h.Orders.PastOrders)
			clientApi.POST("/orders/:id/pizzas", h.Orders.AddPizza)
			clientApi.DELETE("/orders/:id/pizzas/:pizza", h.Orders.RemovePizza)
			clientApi.POST("/orders/:id/validate", h.Orders.ValidateOrder)
			clientApi.DELETE("/orders/:id", h.Orders.CancelOrder)

			clientApi.GET("/filters", h.Filters.GetFilters)
			clientApi.PUT("/filters", h.Filters.SetFilters)
			clientApi.DELETE("/filters", h.Filters.ClearFilters)
			clientApi.GET("/filters/pizzas", h.Filters.ApplyFilters)

			clientApi.POST("/evaluations", h.Evaluations.AddEvaluation)
		}

		// Staff routes require an OAuth2 access token from /oauth/token
		staffApi := v1.Group("/staff")
		staffApi.Use(middleware.JWTAuth(jwtSecret), middleware.RequireRole(auth.RoleStaff))
		{
			staffApi.GET("/ingredients", h.Pizzas.GetIngredients)
			staffApi.POST("/ingredients", h.Pizzas.CreateIngredient)
			staffApi.PUT("/ingredients/:name/price", h.Pizzas.SetIngredientPrice)
			staffApi.POST("/ingredients/:name/forbid", h.Pizzas.ForbidIngredient)

			staffApi.POST("/pizzas", h.Pizzas.CreatePizza)
			staffApi.POST("/pizzas/:name/ingredients", h.Pizzas.AddIngredient)
			staffApi.DELETE("/pizzas/:name/ingredients/:ingredient", h.Pizzas.RemoveIngredient)
			staffApi.GET("/pizzas/:name/forbidden", h.Pizzas.ListForbidden)
			staffApi.GET("/pizzas/:name/price", h.Pizzas.GetPrice)
			staffApi.PUT("/pizzas/:name/price", h.Pizzas.SetPrice)
			staffApi.PUT("/pizzas/:name/photo", h.Pizzas.AttachPhoto)

			staffApi.GET("/clients", h.Clients.ListAccounts)
			staffApi.GET("/clients/:email/orders", h.Orders.ProcessedOrdersForClient)
			staffApi.GET("/clients/:email/history", h.Clients.ClientHistory)

			staffApi.GET("/orders/processed", h.Orders.ProcessedOrders)
			staffApi.GET("/orders/pending", h.Orders.PeekPendingOrders)
			staffApi.POST("/orders/pending/claim", h.Orders.ClaimPendingOrders)
			staffApi.GET("/orders/:id/benefit", h.Orders.OrderBenefit)
			staffApi.GET("/orders/:id/history", h.Orders.OrderHistory)

			staffApi.GET("/statistics/benefit-per-pizza", h.Statistics.BenefitPerPizza)
			staffApi.GET("/statistics/total-benefit", h.Statistics.TotalBenefit)
			staffApi.GET("/statistics/pizzas-per-client", h.Statistics.PizzaCountPerClient)
			staffApi.GET("/statistics/benefit-per-client", h.Statistics.BenefitPerClient)
			staffApi.GET("/statistics/pizzas/:name/count", h.Statistics.OrderCountForPizza)
			staffApi.GET("/statistics/ranking", h.Statistics.RankedPizzas)

			staffApi.GET("/tools", h.Clients.ListTools)
			staffApi.POST("/tools", h.Clients.CreateTool)
			staffApi.DELETE("/tools/:id", h.Clients.DeleteTool)
		}
	}
}
