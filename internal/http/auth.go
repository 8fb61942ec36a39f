package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"school-cms/internal/auth"
	"school-cms/internal/domain"
)

const contextUserKey = "school-cms.user"

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// loginHandler accepts form-encoded credentials (username is the email) and
// responds with a bearer token. Unknown email, wrong password and a
// malformed form all produce the same 401.
func (h *Handler) loginHandler(c *gin.Context) {
	if h.login == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return
	}

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.unauthorized(c)
		return
	}

	token, err := h.login.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			h.unauthorized(c)
			return
		}
		h.logger.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// requireAuth resolves the bearer token to a user before the handler runs.
// A missing or malformed Authorization header gets the same response as an
// invalid token.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.resolver == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
			return
		}

		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			h.unauthorized(c)
			return
		}

		user, err := h.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				h.unauthorized(c)
				return
			}
			h.logger.WithError(err).Error("identity resolution failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication check failed"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func (h *Handler) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
}

// currentUser returns the user resolved by requireAuth for this request.
func currentUser(c *gin.Context) (*domain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
