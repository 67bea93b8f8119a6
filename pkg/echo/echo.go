// Package echo answers every invocation with a configured message.
package echo

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// EnvMessage names the environment variable holding the message to echo.
const EnvMessage = "ECHO_MESSAGE"

type Config struct {
	Message string `json:"message"`
}

// ConfigFromEnv reads EnvMessage. An unset variable yields the empty message.
func ConfigFromEnv() Config {
	return Config{
		Message: os.Getenv(EnvMessage),
	}
}

type Handler struct {
	config Config
}

func New(config Config) Handler {
	return Handler{config: config}
}

func (h Handler) Config() Config {
	return h.config
}

// Handle ignores the request and responds with the configured message. It never returns an error.
func (h Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return h.respond(ctx), nil
}

// Invoke is the Lambda entry point. The payload is never decoded so any event shape is accepted.
func (h Handler) Invoke(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return h.respond(ctx), nil
}

// Body is the message every response carries.
func (h Handler) Body() string {
	return h.config.Message
}

func (h Handler) respond(ctx context.Context) events.APIGatewayProxyResponse {
	event := log.Debug().Int("bytes", len(h.config.Message))
	if ctx != nil {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			event = event.Str("request-id", lc.AwsRequestID)
		}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			event = event.Str("trace-id", sc.TraceID().String())
		}
	}
	event.Msg("echoing")

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
		Body: h.Body(),
	}
}

// Echo resolves the configuration from the environment at call time and handles the request.
func Echo(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return New(ConfigFromEnv()).Handle(ctx, request)
}
