package runtime

import (
	"context"
	"fmt"

	"github.com/LukePeterson/3musketeers/pkg/convention/config"
	"github.com/LukePeterson/3musketeers/pkg/convention/release"
	"github.com/LukePeterson/3musketeers/pkg/echo"
	"github.com/LukePeterson/3musketeers/pkg/service/docker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rs/zerolog/log"
)

const DefaultPort = "9000"

type RuntimeService interface {
	Run(ctx context.Context, input docker.RunInput) error
}

type Services struct {
	Runtime RuntimeService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, r RuntimeService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Runtime: r,
		},
	}
}

// Emulate runs a built image locally behind the runtime interface emulator of the Lambda base image.
func (c Convention) Emulate(ctx context.Context, i release.Image, port string, message echo.Config) error {
	ctx, span := otel.Tracer("").Start(ctx, "runtime.Emulate")
	defer span.End()

	if i.ID == "" {
		err := fmt.Errorf("image has not been built")
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if port == "" {
		port = DefaultPort
	}

	input := docker.RunInput{
		Image: i.ID,
		Port:  port,
		Environment: map[string]string{
			echo.EnvMessage: message.Message,
		},
	}

	span.SetAttributes(
		attribute.String("image-id", i.ID),
		attribute.String("port", port),
	)

	log.Info().
		Str("function", c.Config.Function.Name).
		Str("invoke", InvokeUrl(port)).
		Msg("emulating")

	if err := c.Service.Runtime.Run(ctx, input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to run %s: %v", i.ID, err)
	}

	return nil
}

// InvokeUrl is where the runtime interface emulator accepts invocations.
func InvokeUrl(port string) string {
	return "http://localhost:" + port + "/2015-03-31/functions/function/invocations"
}
