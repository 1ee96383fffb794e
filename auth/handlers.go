package auth

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/models"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Handler carries the auth endpoints' dependencies.
type Handler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration

	// Nil unless federated login is configured.
	Verifier TokenVerifier
}

func NewHandler(db *gorm.DB, jwtSecret string, ttl time.Duration, verifier TokenVerifier) *Handler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{DB: db, JWTSecret: jwtSecret, TokenTTL: ttl, Verifier: verifier}
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	input.Email = NormalizeEmail(input.Email)
	if !emailRe.MatchString(input.Email) {
		fields["email"] = "Invalid email address"
	}
	if len(input.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		return
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: &hash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// The unique email index catches registration races the count
		// check cannot.
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	identity, err := Authenticate(h.DB, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	h.respondWithToken(c, identity)
}

type oidcInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

// POST /auth/oidc
func (h *Handler) OIDCLogin(c *gin.Context) {
	if h.Verifier == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Federated login is not configured"})
		return
	}

	var input oidcInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	claims, err := h.Verifier.Verify(c.Request.Context(), input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
		return
	}

	identity, err := FederatedLogin(h.DB, claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	h.respondWithToken(c, identity)
}

// GET /auth/session
//
// Parses the token inline instead of going through the aborting middleware,
// so anonymous callers get a 200 null body rather than a 401.
func (h *Handler) Session(c *gin.Context) {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		c.JSON(http.StatusOK, nil)
		return
	}

	claims, err := ParseToken(h.JWTSecret, tokenStr)
	if err != nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": claims.UserID,
		"name":    claims.Name,
	})
}

func (h *Handler) respondWithToken(c *gin.Context, identity *Identity) {
	token, err := IssueToken(h.JWTSecret, identity, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    identity.ID,
			"name":  identity.Name,
			"email": identity.Email,
		},
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
