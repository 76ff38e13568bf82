package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/auth"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

// AuthController handles client registration and sessions
type AuthController struct {
	shop   *pizzeria.Pizzeria
	signer *auth.SessionSigner
}

func NewAuthController(shop *pizzeria.Pizzeria, signer *auth.SessionSigner) *AuthController {
	return &AuthController{shop: shop, signer: signer}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Address   string `json:"address"`
	Age       int    `json:"age"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register godoc
// @Summary Register a client
// @Description Create a client account. Credentials, profile, email format and uniqueness are checked in that order.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "Account details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info := models.PersonalInfo{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Address:   req.Address,
		Age:       req.Age,
	}
	if err := ac.shop.Register(req.Email, req.Password, info); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "client_registered", "email": req.Email})
}

// Login godoc
// @Summary Log a client in
// @Description Open a session and return a bearer token wrapping it
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, ok := ac.shop.Login(req.Email, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "invalid email or password"))
		return
	}

	token, expiresAt, err := ac.signer.Sign(session)
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		_ = ac.shop.Logout(session.ID)
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "token_generation_failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int64(time.Until(expiresAt).Seconds()),
		"session_id":   session.ID,
		"email":        session.Email,
	})
}

// Logout godoc
// @Summary Log the client out
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.shop.Logout(middleware.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current client
// @Description Return the account of the connected client
// @Tags auth
// @Produce json
// @Success 200 {object} models.ClientAccount
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	account, err := ac.shop.CurrentClient(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// ChangePassword godoc
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body changePasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/password [put]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := ac.shop.ChangePassword(middleware.SessionID(c), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
