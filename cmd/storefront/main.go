package main

import (
	"context"
	"time"

	"github.com/Renatopaccha/Dental-Gest/config"
	"github.com/Renatopaccha/Dental-Gest/internal/app"
	"github.com/Renatopaccha/Dental-Gest/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
