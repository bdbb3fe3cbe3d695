package main

import (
	"context"
	"time"

	"github.com/niksmo/product-service/config"
	"github.com/niksmo/product-service/internal/app"
	"github.com/niksmo/product-service/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	productService := app.New(sigCtx, cfg)

	productService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	productService.Close(ctx)
}
