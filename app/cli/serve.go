package cli

import (
	"context"
	"fmt"
	"path/filepath"

	actx "go.hackfix.me/hexo/app/context"
	aerrors "go.hackfix.me/hexo/app/errors"
	"go.hackfix.me/hexo/store"
	"go.hackfix.me/hexo/store/badger"
	"go.hackfix.me/hexo/store/sqlite"
	"go.hackfix.me/hexo/web/server"
)

// Serve starts a development shard server.
type Serve struct {
	Address string `help:"[host]:port to listen on." default:":2020"`
	Backend string `help:"Storage backend of the shard: ${enum}." enum:"badger,sqlite" default:"badger"`
	DataDir string `help:"Directory of the shard data." default:"${dataDir}"`
	Memory  bool   `help:"Keep the shard data in memory only."`
}

// Run the serve command.
func (s *Serve) Run(appCtx *actx.Context) error {
	st, err := s.openStore(appCtx)
	if err != nil {
		return aerrors.NewRuntimeError("failed opening the shard store", err, "")
	}
	defer st.Close()

	srv := server.New(st, s.Address, appCtx.Logger)

	return srv.ListenAndServe(appCtx.Ctx)
}

func (s *Serve) openStore(appCtx *actx.Context) (store.Store, error) {
	if !s.Memory {
		if err := appCtx.FS.MkdirAll(s.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed creating data directory: %w", err)
		}
	}

	switch s.Backend {
	case "sqlite":
		path := ":memory:"
		if !s.Memory {
			path = filepath.Join(s.DataDir, "shard.db")
		}
		// Requests still in flight during shutdown need a live context.
		return sqlite.Open(context.WithoutCancel(appCtx.Ctx), path)
	default:
		var path string
		if !s.Memory {
			path = filepath.Join(s.DataDir, "badger")
		}
		return badger.Open(path)
	}
}
