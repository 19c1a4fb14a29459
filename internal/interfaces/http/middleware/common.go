package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin.Context key holding the request ID.
const RequestIDKey = "request_id"

// RequestIDHeader is the header the request ID is read from and echoed to.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a unique request ID to each request, reusing the
// caller-supplied one when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "req-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the default CORS configuration. AllowOrigins is
// empty on purpose: cross-origin access stays closed until origins are
// configured explicitly.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Origin"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSWithConfig returns a CORS middleware with custom configuration
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowWildcard = true
			break
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if c.Request.Method == http.MethodOptions {
			if allowed := resolveOrigin(cfg.AllowOrigins, allowWildcard, origin); allowed != "" {
				c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
				if cfg.AllowCredentials && allowed != "*" {
					c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				setCORSHeaders(c, cfg)
			}
			// Always answer preflight, even for disallowed origins, so the
			// browser gets a definitive refusal instead of a 404.
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if allowed := resolveOrigin(cfg.AllowOrigins, allowWildcard, origin); allowed != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials && allowed != "*" {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			setCORSHeaders(c, cfg)
		}

		c.Next()
	}
}

func resolveOrigin(allowOrigins []string, allowWildcard bool, origin string) string {
	if len(allowOrigins) == 0 {
		return ""
	}
	if allowWildcard {
		return "*"
	}
	for _, o := range allowOrigins {
		if o == origin {
			return origin
		}
	}
	return ""
}

func setCORSHeaders(c *gin.Context, cfg CORSConfig) {
	c.Writer.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
	c.Writer.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))

	if len(cfg.ExposeHeaders) > 0 {
		c.Writer.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	if cfg.MaxAge > 0 {
		c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
	}
}
