package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leaar-backend/internal/domain"
	"leaar-backend/internal/notify"
	"leaar-backend/internal/payment"
	"leaar-backend/internal/service"
	"leaar-backend/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	tokens   service.TokenService
	products service.ProductService
	email    notify.EmailSender
	sms      notify.SMSSender
	payments payment.Client
	storage  storage.Service
	bucket   string
	prefix   string
	logger   *logrus.Logger

	// adminBootstrap gates the create-admin route; it stays unregistered
	// unless an admin secret was configured out of band.
	adminBootstrap bool
}

type HandlerConfig struct {
	Users          service.UserService
	Tokens         service.TokenService
	Products       service.ProductService
	Email          notify.EmailSender
	SMS            notify.SMSSender
	Payments       payment.Client
	Storage        storage.Service
	Bucket         string
	KeyPrefix      string
	Logger         *logrus.Logger
	AdminBootstrap bool
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:          cfg.Users,
		tokens:         cfg.Tokens,
		products:       cfg.Products,
		email:          cfg.Email,
		sms:            cfg.SMS,
		payments:       cfg.Payments,
		storage:        cfg.Storage,
		bucket:         cfg.Bucket,
		prefix:         cfg.KeyPrefix,
		logger:         logger,
		adminBootstrap: cfg.AdminBootstrap,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh-token", h.refreshToken)
			auth.POST("/logout", h.authenticated(), h.logout)
			auth.POST("/verify-token", h.authenticated(), h.verifyToken)
			if h.adminBootstrap {
				auth.POST("/create-admin", h.createAdmin)
			}
		}

		users := api.Group("/users", h.authenticated())
		{
			users.GET("/me", h.currentUser)
			users.PUT("/update-profile", h.updateProfile)
			users.PUT("/change-password", h.changePassword)
			users.DELETE("/delete-account", h.deleteAccount)
			users.POST("/avatar", h.uploadAvatar)
			users.GET("/avatar-url", h.avatarURL)
			users.GET("", h.requireAdmin(), h.listUsers)
		}

		api.GET("/media", h.authenticated(), h.requireAdmin(), h.listMedia)

		products := api.Group("/products")
		{
			products.GET("", h.listProducts)
			products.GET("/:id", h.getProduct)
			products.POST("", h.authenticated(), h.requireAdmin(), h.createProduct)
			products.PUT("/:id", h.authenticated(), h.requireAdmin(), h.updateProduct)
			products.DELETE("/:id", h.authenticated(), h.requireAdmin(), h.deleteProduct)
		}

		messaging := api.Group("/messaging", h.authenticated())
		{
			messaging.POST("/email", h.sendEmail)
			messaging.POST("/sms", h.sendSMS)
		}

		api.POST("/payments/intent", h.authenticated(), h.createPaymentIntent)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func respondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// serviceError maps domain failures onto the response envelope. Persistence
// and provider failures stay opaque: the cause is logged, not returned.
func (h *Handler) serviceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrPasswordUnchanged):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidAdminKey):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, notify.ErrNotConfigured),
		errors.Is(err, payment.ErrNotConfigured):
		h.logger.Warnf("upstream provider: %v", err)
		respondError(c, http.StatusInternalServerError, "upstream provider unavailable")
	default:
		h.logger.Errorf("internal error: %v", err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// UserResponse is the sanitized outbound user view. The password hash is
// not part of this type at all.
type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Age        int     `json:"age,omitempty"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"isVerified"`
	Bio        string  `json:"bio,omitempty"`
	Avatar     string  `json:"avatar,omitempty"`
	LastLogin  *string `json:"lastLogin,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Age:        user.Age,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		Bio:        user.Bio,
		Avatar:     user.Avatar,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		v := user.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &v
	}
	return resp
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func productToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Category:    product.Category,
		Stock:       product.Stock,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}
