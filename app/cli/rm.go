package cli

import (
	actx "go.hackfix.me/hexo/app/context"
)

// The Rm command deletes a key. Deleting a missing key is not an error.
type Rm struct {
	Key string `arg:"" help:"The key to delete."`
}

// Run the rm command.
func (c *Rm) Run(appCtx *actx.Context) error {
	op, err := appCtx.Client.Delete(appCtx.Ctx, c.Key)
	if err != nil {
		return err
	}
	appCtx.Logger.Debug("deleted key", "key", c.Key, "operation", op)

	return nil
}
