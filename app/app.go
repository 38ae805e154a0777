package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/mandelsoft/vfs/pkg/memoryfs"

	"go.hackfix.me/hexo/app/cli"
	"go.hackfix.me/hexo/app/config"
	actx "go.hackfix.me/hexo/app/context"
	aerrors "go.hackfix.me/hexo/app/errors"
	"go.hackfix.me/hexo/web/client"
)

// App is the application.
type App struct {
	ctx      *actx.Context
	cli      *cli.CLI
	logLevel *slog.LevelVar

	Exit func(int)
}

// New initializes a new application.
func New(opts ...Option) *App {
	defaultCtx := &actx.Context{
		Ctx:     context.Background(),
		Version: actx.GetVersion(),
		FS:      memoryfs.New(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdin:   strings.NewReader(""),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		DataDir: filepath.Join(xdg.DataHome, "hexo", "shard"),
	}
	app := &App{ctx: defaultCtx, logLevel: &slog.LevelVar{}, Exit: func(int) {}}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Run parses args and executes the selected command.
func (app *App) Run(args []string) error {
	app.cli = &cli.CLI{}
	parser, err := kong.New(app.cli,
		kong.Name("hexo"),
		kong.Description("Client for HexoDB key-value shards."),
		kong.UsageOnError(),
		kong.DefaultEnvars("HEXO"),
		kong.Exit(app.Exit),
		kong.Writers(app.ctx.Stdout, app.ctx.Stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Configuration(config.YAML, app.configPaths()...),
		kong.Vars{
			"version": app.ctx.Version,
			"dataDir": app.ctx.DataDir,
		},
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	app.logLevel.Set(app.cli.LogLevel)

	app.ctx.Client, err = client.New(app.cli.ShardURL, client.WithLogger(app.ctx.Logger))
	if err != nil {
		return aerrors.NewRuntimeError("invalid shard URL", err,
			"Set --shard-url or HEXO_SHARD_URL to the base URL of a shard, e.g. http://127.0.0.1:2020")
	}

	err = kctx.Run(app.ctx)
	if errors.Is(err, client.ErrShard) {
		return aerrors.NewRuntimeError("shard request failed", err,
			"Is the shard running? Check --shard-url or HEXO_SHARD_URL.")
	}

	return err
}

// FatalIfErrorf terminates the application with an error message if err != nil.
func (app *App) FatalIfErrorf(err error, args ...any) {
	if err == nil {
		return
	}

	msg := err.Error()
	var herr aerrors.WithHint
	if errors.As(err, &herr) {
		if hint := herr.Hint(); hint != "" {
			args = append(args, "hint", hint)
		}
	}
	app.ctx.Logger.Error(msg, args...)
	app.Exit(1)
}

// configPaths returns the configuration files to load, in order of priority.
func (app *App) configPaths() []string {
	if app.ctx.Env != nil {
		if p := app.ctx.Env.Get("HEXO_CONFIG"); p != "" {
			return []string{p}
		}
	}
	return []string{filepath.Join(xdg.ConfigHome, "hexo", "config.yaml")}
}
