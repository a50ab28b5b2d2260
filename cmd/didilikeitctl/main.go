package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("didilikeitctl failed", slog.Any("error", err))
		os.Exit(1)
	}
}
