package main

import (
	"context"

	"github.com/LukePeterson/3musketeers/cmd/cli"
	"github.com/LukePeterson/3musketeers/cmd/handler"
	"github.com/LukePeterson/3musketeers/internal/tracing"
	"github.com/LukePeterson/3musketeers/internal/util"
	"github.com/LukePeterson/3musketeers/pkg/echo"
)

func main() {
	util.SetLogLevel()

	ctx := context.Background()
	tp, shutdown := tracing.InitOtel(ctx, "echo")
	defer shutdown()

	if util.InLambda() {
		handler.Listen(tp, echo.New(echo.ConfigFromEnv()))
		return
	}

	cli.Invoke(ctx)
}
