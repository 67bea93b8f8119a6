package curl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LukePeterson/3musketeers/pkg/convention/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rs/zerolog/log"
)

// HttpClient is satisfied by *http.Client.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Service struct {
	Http HttpClient
}

type Convention struct {
	Config   config.Config
	Service  Service
	Attempts int
	Delay    time.Duration
}

func FromServices(c config.Config, h HttpClient) Convention {
	return Convention{
		Config: c,
		Service: Service{
			Http: h,
		},
		Attempts: 10,
		Delay:    3 * time.Second,
	}
}

type Response struct {
	Status int
	Body   string
}

func (c Convention) Get(ctx context.Context, url string) (Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	response, err := c.Service.Http.Do(request)
	if err != nil {
		return Response{}, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response from %s: %v", url, err)
	}

	return Response{response.StatusCode, string(body)}, nil
}

// Verify polls url until it answers 200 with the expected body.
// Fresh function URLs answer 403 until the public permission propagates.
func (c Convention) Verify(ctx context.Context, url, expected string) error {
	ctx, span := otel.Tracer("").Start(ctx, "curl.Verify")
	defer span.End()

	span.SetAttributes(attribute.String("url", url))

	var last error
	for attempt := 1; attempt <= c.Attempts; attempt++ {
		response, err := c.Get(ctx, url)

		switch {
		case err != nil:
			last = err
		case response.Status != http.StatusOK:
			last = fmt.Errorf("%s answered %d", url, response.Status)
		case response.Body != expected:
			err := fmt.Errorf("%s answered %q, expected %q", url, response.Body, expected)
			span.SetStatus(codes.Error, err.Error())
			return err
		default:
			return nil
		}

		log.Debug().Err(last).Int("attempt", attempt).Msg("waiting for function url")

		select {
		case <-ctx.Done():
			span.SetStatus(codes.Error, ctx.Err().Error())
			return ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	span.SetStatus(codes.Error, last.Error())
	return fmt.Errorf("gave up after %d attempts: %v", c.Attempts, last)
}
