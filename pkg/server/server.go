package server

import (
	"net/http"
	"os"

	"github.com/LukePeterson/3musketeers/pkg/echo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EnvPort is the port variable read by the AWS Lambda Web Adapter.
const EnvPort = "AWS_LWA_PORT"

const defaultPort = "8081"

// RequestIdHeader is echoed back, or minted when the caller sent none.
const RequestIdHeader = "X-Request-Id"

func Address(port string) string {
	if port != "" {
		return "0.0.0.0:" + port
	}

	if value, exists := os.LookupEnv(EnvPort); exists && value != "" {
		return "0.0.0.0:" + value
	}

	return "0.0.0.0:" + defaultPort
}

// New answers every method on every path with the handler's message.
func New(h echo.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.Any("/*path", func(c *gin.Context) {
		c.String(http.StatusOK, "%s", h.Body())
	})

	return router
}

func Run(h echo.Handler, port string) error {
	listen := Address(port)
	log.Info().Str("listen", listen).Msg("serving echo over http")
	return New(h).Run(listen)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(RequestIdHeader, requestId)

		c.Next()
		log.Debug().
			Str("request-id", requestId).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}
