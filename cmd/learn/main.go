package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/warrantyguard/internal/learning"
	"github.com/dmitrijs2005/warrantyguard/internal/learning/learncmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := learncmd.NewRootCmd(learning.NewCatalog(), nil)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
