package util

import (
	"os"
	"regexp"
	"strings"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
)

var shaPattern = regexp.MustCompile(`^[a-f0-9]{40}$`)

// DeSlasher turns a path-like string into something usable in AWS resource names.
func DeSlasher(str string) string {
	dashes := strings.ReplaceAll(str, "/", "-")
	dashes = strings.TrimSuffix(dashes, "-")
	dashes = strings.TrimPrefix(dashes, "-")
	return dashes
}

func ShaLike(str string) bool {
	return shaPattern.MatchString(str)
}

func RoleNameFromArn(arn string) string {
	parts := strings.SplitN(arn, ":role/", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func RoleArnFromName(accountId, name string) string {
	return "arn:aws:iam::" + accountId + ":role/" + name
}

func InLambda() bool {
	_, inLambda := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME")
	return inLambda
}

func OtelConfigPresent() bool {
	_, present := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	return present
}

// SetLogLevel applies LOG_LEVEL to the global logger, falling back to warn.
func SetLogLevel() {
	zerolog.SetGlobalLevel(LogLevel(os.Getenv("LOG_LEVEL")))
}

func LogLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "panic":
		return zerolog.PanicLevel
	case "fatal":
		return zerolog.FatalLevel
	case "error":
		return zerolog.ErrorLevel
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return zerolog.WarnLevel
	}
}

// RetryLogger routes AWS SDK client logs into zerolog.
type RetryLogger struct {
	Log *zerolog.Logger
}

func (l *RetryLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	switch classification {
	case logging.Warn:
		l.Log.Warn().Msgf(format, v...)
	case logging.Debug:
		if strings.Contains(format, "retrying request") {
			l.Log.Info().Msgf(format, v...)
		} else {
			l.Log.Debug().Msgf(format, v...)
		}
	default:
		l.Log.Error().Msgf(format, v...)
	}
}
