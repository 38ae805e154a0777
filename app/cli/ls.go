package cli

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	actx "go.hackfix.me/hexo/app/context"
	aerrors "go.hackfix.me/hexo/app/errors"
	"go.hackfix.me/hexo/web/client"
)

// The Ls command prints entries of the shard.
type Ls struct {
	KeyPrefix string `arg:"" optional:"" help:"An optional key prefix."`

	Sort  string `help:"Dotted path of the sort key within each entry, e.g. '.data.score'."`
	Desc  bool   `help:"Sort in descending order."`
	Limit int    `help:"Maximum number of entries to print."`
	Match string `help:"Only print keys matching this glob pattern, e.g. 'users/*/name'."`
	Keys  bool   `help:"Only print keys."`
}

// Run the ls command.
func (c *Ls) Run(appCtx *actx.Context) error {
	if c.Match != "" && !doublestar.ValidatePattern(c.Match) {
		return aerrors.NewRuntimeError(fmt.Sprintf("invalid glob pattern '%s'", c.Match), nil, "")
	}

	opts := &client.SortOptions{Sort: c.Sort, Descending: c.Desc}
	var (
		entries []client.Entry
		err     error
	)
	if c.KeyPrefix != "" {
		entries, err = appCtx.Client.StartsWith(appCtx.Ctx, c.KeyPrefix, opts)
	} else {
		entries, err = appCtx.Client.All(appCtx.Ctx)
		entries = client.SortEntries(entries, opts)
	}
	if err != nil {
		return err
	}

	if c.Match != "" {
		matched := entries[:0]
		for _, e := range entries {
			ok, _ := doublestar.Match(c.Match, e.Key)
			if ok {
				matched = append(matched, e)
			}
		}
		entries = matched
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	if len(entries) == 0 {
		return nil
	}

	if c.Keys {
		for _, e := range entries {
			fmt.Fprintf(appCtx.Stdout, "%s\n", e.Key)
		}
		return nil
	}
	renderEntries(entries, appCtx.Stdout)

	return nil
}
