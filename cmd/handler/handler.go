package handler

import (
	"github.com/LukePeterson/3musketeers/pkg/echo"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Listen for invocations from the AWS Lambda runtime.
func Listen(tp *sdktrace.TracerProvider, h echo.Handler) {
	instrumented := otellambda.InstrumentHandler(h.Invoke,
		otellambda.WithTracerProvider(tp),
		otellambda.WithFlusher(tp),
	)

	log.Debug().Int("bytes", len(h.Body())).Msg("listening for invocations")

	lambda.Start(instrumented)
}
