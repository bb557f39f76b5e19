package core

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, authService AuthService, tokens *TokenIssuer, db *pgxpool.Pool, redisClient RedisCounter) *gin.Engine {
	startedAt := time.Now()
	r := gin.Default()

	r.Use(OriginRefererMiddleware(cfg))

	var metricsService *MetricsService
	if redisClient != nil {
		metricsService = NewMetricsService(redisClient)
	}

	r.GET("/healthz", func(c *gin.Context) {
		payload := gin.H{"status": "ok"}
		if db != nil {
			var now time.Time
			if err := db.QueryRow(c.Request.Context(), `SELECT NOW()`).Scan(&now); err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "database unreachable")
				return
			}
			payload["timestamp"] = now
		}
		c.JSON(http.StatusOK, payload)
	})

	api := r.Group("/api/auth")
	{
		api.POST("/register", func(c *gin.Context) {
			var req struct {
				Email    string `json:"email"`
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}

			ctx := c.Request.Context()
			id, err := authService.Register(ctx, req.Email, req.Username, req.Password)
			if err != nil {
				switch {
				case errors.Is(err, ErrMissingField):
					respondError(c, http.StatusBadRequest, "MISSING_FIELD", ErrMissingField.Error())
				case errors.Is(err, ErrInvalidEmail):
					respondError(c, http.StatusBadRequest, "INVALID_EMAIL", ErrInvalidEmail.Error())
				case errors.Is(err, ErrWeakPassword):
					respondError(c, http.StatusBadRequest, "WEAK_PASSWORD", ErrWeakPassword.Error())
				case errors.Is(err, ErrDuplicateIdentity):
					respondError(c, http.StatusBadRequest, "DUPLICATE_IDENTITY", ErrDuplicateIdentity.Error())
				default:
					log.Printf("register failed: %v", err)
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error")
				}
				return
			}

			if metricsService != nil {
				metricsService.RecordRegistration(ctx)
			}
			c.JSON(http.StatusCreated, gin.H{"message": "user registered", "user_id": id})
		})

		api.POST("/login", func(c *gin.Context) {
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}

			ctx := c.Request.Context()
			token, err := authService.Login(ctx, req.Email, req.Password)
			if err != nil {
				switch {
				case errors.Is(err, ErrMissingField):
					respondError(c, http.StatusBadRequest, "MISSING_FIELD", ErrMissingField.Error())
				case errors.Is(err, ErrUserNotFound):
					if metricsService != nil {
						metricsService.RecordLoginFailure(ctx)
					}
					respondError(c, http.StatusUnauthorized, "USER_NOT_FOUND", ErrUserNotFound.Error())
				case errors.Is(err, ErrWrongPassword):
					if metricsService != nil {
						metricsService.RecordLoginFailure(ctx)
					}
					respondError(c, http.StatusUnauthorized, "WRONG_PASSWORD", ErrWrongPassword.Error())
				default:
					log.Printf("login failed: %v", err)
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error")
				}
				return
			}

			if metricsService != nil {
				metricsService.RecordLogin(ctx)
			}
			c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
		})

		authed := api.Group("")
		authed.Use(AuthRequired(tokens, metricsService))
		{
			authed.GET("/protected", func(c *gin.Context) {
				userID, ok := currentUserID(c)
				if !ok {
					respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "authorization bearer token is required")
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "access granted", "user_id": userID})
			})

			authed.GET("/metrics", func(c *gin.Context) {
				if metricsService == nil {
					respondError(c, http.StatusServiceUnavailable, "METRICS_UNAVAILABLE", "metrics backend not configured")
					return
				}
				m, err := metricsService.Snapshot(c.Request.Context())
				if err != nil {
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to load metrics")
					return
				}
				c.JSON(http.StatusOK, m)
			})

			authed.GET("/status", func(c *gin.Context) {
				st := CollectSystemStatus(c.Request.Context(), metricsService, startedAt)
				c.JSON(http.StatusOK, st)
			})
		}
	}

	return r
}
