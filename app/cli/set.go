package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	actx "go.hackfix.me/hexo/app/context"
	aerrors "go.hackfix.me/hexo/app/errors"
)

// The Set command stores a value under a key.
type Set struct {
	Key   string `arg:"" help:"The unique key associated with the value."`
	Value string `arg:"" help:"The value to store."`

	Number bool `help:"Store the value as a number." xor:"type"`
	JSON   bool `help:"Store the value as a JSON document." xor:"type"`
}

// Run the set command.
func (c *Set) Run(appCtx *actx.Context) error {
	var value any = c.Value
	switch {
	case c.Number:
		n, err := numberArg(c.Value)
		if err != nil {
			return err
		}
		value = n
	case c.JSON:
		if !json.Valid([]byte(c.Value)) {
			return aerrors.NewRuntimeError(
				fmt.Sprintf("value '%s' is not valid JSON", c.Value), nil, "")
		}
		value = json.RawMessage(c.Value)
	}

	op, err := appCtx.Client.Set(appCtx.Ctx, c.Key, value)
	if err != nil {
		return err
	}
	appCtx.Logger.Debug("set value", "key", c.Key, "operation", op)

	return nil
}

func numberArg(s string) (json.Number, error) {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", aerrors.NewRuntimeError(
			fmt.Sprintf("value '%s' is not a number", s), nil, "")
	}
	return json.Number(s), nil
}
