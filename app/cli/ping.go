package cli

import (
	"fmt"

	actx "go.hackfix.me/hexo/app/context"
)

// The Ping command prints the latency of the shard in milliseconds.
type Ping struct{}

// Run the ping command.
func (c *Ping) Run(appCtx *actx.Context) error {
	d, err := appCtx.Client.Ping(appCtx.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(appCtx.Stdout, "%dms\n", d.Milliseconds())

	return nil
}
