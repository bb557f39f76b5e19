package core

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key carrying the verified identity id.
const userIDKey = "user_id"

// AuthRequired validates the bearer token on incoming requests and
// short-circuits with a distinct 401 per failure mode: no bearer header at
// all, a token that cannot be verified, or a token past its expiry. On
// success the verified user id is stored in the request context.
func AuthRequired(tokens *TokenIssuer, metrics *MetricsService) gin.HandlerFunc {
	reject := func(c *gin.Context, code, message string) {
		if metrics != nil {
			metrics.RecordTokenRejection(c.Request.Context())
		}
		respondError(c, http.StatusUnauthorized, code, message)
		c.Abort()
	}

	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			reject(c, "MISSING_TOKEN", "authorization bearer token is required")
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				reject(c, "EXPIRED_TOKEN", "token has expired")
			} else {
				reject(c, "INVALID_TOKEN", "token is invalid")
			}
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the identity id stored by AuthRequired.
func currentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// OriginRefererMiddleware validates Origin/Referer against allowed list and sets CORS headers.
func OriginRefererMiddleware(cfg Config) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if origin == "" {
			// Same-origin navigation (no Origin header) is allowed.
			return true
		}
		if len(allowed) == 0 {
			return false
		}
		origin = strings.ToLower(origin)
		_, ok := allowed[origin]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		referer := c.GetHeader("Referer")
		if origin == "" && referer != "" {
			if u, err := url.Parse(referer); err == nil {
				origin = u.Scheme + "://" + u.Host
			}
		}

		// Preflight handling
		if c.Request.Method == http.MethodOptions && origin != "" {
			if !isAllowed(origin) {
				respondError(c, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
				c.Abort()
				return
			}
			setCORSHeaders(c, origin)
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		if !isAllowed(origin) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "origin not allowed")
			c.Abort()
			return
		}
		if origin != "" {
			setCORSHeaders(c, origin)
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Vary", "Origin")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}
