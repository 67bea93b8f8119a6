package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/LukePeterson/3musketeers/cmd/cli/router"
	"github.com/LukePeterson/3musketeers/internal/gitlib"
	"github.com/LukePeterson/3musketeers/internal/util"
	"github.com/LukePeterson/3musketeers/pkg/convention/config"
	"github.com/LukePeterson/3musketeers/pkg/sdk"
	"go.opentelemetry.io/otel"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultEnvFile = ".env"

func Invoke(ctx context.Context) {
	var err error
	var cfg config.Config
	var api sdk.API

	ctx, span := otel.Tracer("").Start(ctx, "cli")
	defer span.End()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	// The env file has to be loaded before go-arg reads env tags, so parse twice.
	var root router.Root
	arg.MustParse(&root)

	if err := LoadEnv(root.EnvFile); err != nil {
		log.Fatal().Err(err).Str("file", root.EnvFile).Msg("failed to load env file")
	}

	root = router.Root{}
	parser := arg.MustParse(&root)

	if parser.Subcommand() == nil {
		parser.WriteHelp(os.Stdout)
		return
	}

	switch root.Scope() {
	case router.ScopeLocal:
		if cfg, err = fromCwd(root.FunctionPath()); err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration from cwd")
		}

		if api, err = sdk.InitLocal(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize SDK")
		}

	case router.ScopeAws:
		if cfg, err = fromCwd(root.FunctionPath()); err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration from cwd")
		}

		retryLogger := util.RetryLogger{
			Log: &log.Logger,
		}

		awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithLogger(&retryLogger),
			awsconfig.WithClientLogMode(aws.LogRetries))

		if err != nil {
			log.Fatal().Err(err).Msg("failed to load AWS configuration")
		}

		if err := cfg.DiscoverCaller(ctx, sts.NewFromConfig(awsConfig), awsConfig); err != nil {
			log.Fatal().Err(err).Msg("failed to discover caller")
		}

		if err := cfg.DiscoverRegistry(ctx, ecr.NewFromConfig(awsConfig), awsConfig); err != nil {
			log.Fatal().Err(err).Msg("failed to discover registry")
		}

		if api, err = sdk.Init(ctx, awsConfig, cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize SDK")
		}
	}

	if err := root.Route(ctx, api); err != nil {
		log.Fatal().Err(err).Strs("argv", os.Args).Msg("failed command")
	}
}

// LoadEnv loads a dotenv file without overriding variables already set.
// An empty file means the default, which may be absent.
func LoadEnv(file string) error {
	if file != "" {
		return godotenv.Load(file)
	}

	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func fromCwd(functionPath string) (config.Config, error) {
	checkout, err := gitlib.FromCwd()
	if err != nil {
		return config.Config{}, err
	}

	return config.FromCheckout(checkout, functionPath)
}
