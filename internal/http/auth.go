package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leaar-backend/internal/domain"
	"leaar-backend/internal/service"
)

const contextUserKey = "authUser"

// authenticated extracts and verifies the bearer token, resolves the bound
// user, and attaches the sanitized record to the request context. A missing
// header (or one using another scheme) is 401; a bad token is 403; a token
// whose user no longer exists (deleted account, unexpired token) is 401.
func (h *Handler) authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "authorization token required")
			c.Abort()
			return
		}

		userID, err := h.tokens.ValidateToken(token)
		if err != nil {
			respondError(c, http.StatusForbidden, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// requireAdmin layers the role check on top of authenticated.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUserFrom(c)
		if user == nil || !user.IsAdmin() {
			respondError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	const scheme = "Bearer "
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

func currentUserFrom(c *gin.Context) *domain.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Age:      req.Age,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"message":      "user registered successfully",
		"user":         userToResponse(user),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"expiresIn":    int64(h.tokens.AccessTTL().Seconds()),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	accessToken, refreshToken, err := h.issueTokens(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message":      "logged in successfully",
		"user":         userToResponse(user),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"expiresIn":    int64(h.tokens.AccessTTL().Seconds()),
	})
}

type createAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	AdminKey string `json:"adminKey" binding:"required"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
}

func (h *Handler) createAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name, email, password, and adminKey are required")
		return
	}

	user, err := h.users.CreateAdmin(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Age:      req.Age,
	}, req.AdminKey)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"message":     "admin created",
		"user":        userToResponse(user),
		"accessToken": accessToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshToken mints a fresh access token off a still-valid refresh token.
// The refresh token itself is not rotated; it stays valid until it expires.
func (h *Handler) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		respondError(c, http.StatusBadRequest, "refresh token is required")
		return
	}

	userID, err := h.tokens.ValidateToken(req.RefreshToken)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	// confirm the bound account still exists before minting a new token
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"accessToken": accessToken,
		"expiresIn":   int64(h.tokens.AccessTTL().Seconds()),
	})
}

// logout is a client-side token discard; tokens are stateless and nothing is
// revoked server-side.
func (h *Handler) logout(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *Handler) verifyToken(c *gin.Context) {
	user := currentUserFrom(c)
	respondOK(c, http.StatusOK, gin.H{
		"message": "token is valid",
		"userId":  user.ID,
	})
}

func (h *Handler) issueTokens(userID string) (string, string, error) {
	accessToken, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
