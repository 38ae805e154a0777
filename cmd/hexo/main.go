package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"go.hackfix.me/hexo/app"
	actx "go.hackfix.me/hexo/app/context"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	isStderrTTY := isatty.IsTerminal(os.Stderr.Fd())

	a := app.New(
		app.WithContext(ctx),
		app.WithFS(osfs.New()),
		app.WithEnv(osEnv{}),
		app.WithFDs(os.Stdin, colorable.NewColorableStdout(), colorable.NewColorableStderr()),
		app.WithLogger(isStderrTTY),
		app.WithExit(func(code int) {
			cancel()
			os.Exit(code)
		}),
	)
	a.FatalIfErrorf(a.Run(os.Args[1:]))
}

type osEnv struct{}

var _ actx.Environment = &osEnv{}

func (e osEnv) Get(key string) string {
	return os.Getenv(key)
}

func (e osEnv) Set(key, val string) error {
	return os.Setenv(key, val)
}
