package cli

import (
	"fmt"

	actx "go.hackfix.me/hexo/app/context"
	aerrors "go.hackfix.me/hexo/app/errors"
)

// The Get command retrieves and prints the value of a key.
type Get struct {
	Key string `arg:"" help:"The unique key associated with the value."`

	JSON bool `help:"Print the value as JSON. Strings are quoted."`
}

// Run the get command.
func (c *Get) Run(appCtx *actx.Context) error {
	val, err := appCtx.Client.Fetch(appCtx.Ctx, c.Key)
	if err != nil {
		return err
	}
	if !val.Exists() {
		return aerrors.NewRuntimeError(fmt.Sprintf("key '%s' doesn't exist", c.Key), nil, "")
	}

	if c.JSON {
		fmt.Fprintf(appCtx.Stdout, "%s\n", val.Raw())
	} else {
		fmt.Fprintf(appCtx.Stdout, "%s\n", val.String())
	}

	return nil
}
