package mock

import (
	"net/url"

	"github.com/LukePeterson/3musketeers/pkg/convention/config"
	"github.com/LukePeterson/3musketeers/pkg/echo"
)

const (
	Sha     = "2e17ab2c190fc5dfff79e66fc972f015da937f05"
	Branch  = "feature/greeting"
	Message = "Thank you for using the 3 Musketeers!"
)

func Origin() *url.URL {
	origin, _ := url.Parse("https://github.com/musketeers/echo-service.git")
	return origin
}

// Config is a fully discovered configuration for the echo function of a fictional repository.
func Config() config.Config {
	return config.Config{
		Function: config.Function{
			Name: "echo",
			Path: "/src/echo-service/echo",
		},
		Caller: config.Caller{
			Arn: "arn:aws:iam::123456789012:user/dartagnan",
		},
		Account: config.Account{
			Id:     "123456789012",
			Region: "us-west-2",
		},
		Git: config.Git{
			Origin: Origin().String(),
			Branch: Branch,
			Sha:    Sha,
			Root:   "/src/echo-service",
		},
		Registry: config.Registry{
			Id:     "123456789013",
			Region: "us-west-2",
			Url:    config.RegistryUrl("123456789013", "us-west-2"),
		},
		Repository: config.Repository{
			Prefix: "musketeers/echo-service",
		},
		Resource: config.Resource{
			Prefix: "echo-service",
		},
		Label: config.Label{
			Sha:    "org.3musketeers.echo.git-sha",
			Origin: "org.3musketeers.echo.git-origin",
			Built:  "org.3musketeers.echo.built-at",
		},
		Echo: echo.Config{Message: Message},
	}
}
