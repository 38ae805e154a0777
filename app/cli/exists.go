package cli

import (
	"fmt"

	actx "go.hackfix.me/hexo/app/context"
)

// The Exists command prints whether a key has a value.
type Exists struct {
	Key string `arg:"" help:"The key to check."`
}

// Run the exists command.
func (c *Exists) Run(appCtx *actx.Context) error {
	ok, err := appCtx.Client.Exists(appCtx.Ctx, c.Key)
	if err != nil {
		return err
	}
	fmt.Fprintln(appCtx.Stdout, ok)

	return nil
}
