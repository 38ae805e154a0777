package cli

import (
	actx "go.hackfix.me/hexo/app/context"
	"go.hackfix.me/hexo/web/client"
)

// The Math command applies an arithmetic operator to the value of a key. A
// missing key is set to the operand.
type Math struct {
	Key   string          `arg:"" help:"The key holding a numeric value."`
	Op    client.Operator `arg:"" help:"The operator: +, -, *, / or add, sub, mul, div."`
	Value string          `arg:"" help:"The numeric operand."`
}

// Run the math command.
func (c *Math) Run(appCtx *actx.Context) error {
	return applyMath(appCtx, c.Key, c.Op, c.Value)
}

// The Add command adds a number to the value of a key.
type Add struct {
	Key   string `arg:"" help:"The key holding a numeric value."`
	Value string `arg:"" help:"The number to add."`
}

// Run the add command.
func (c *Add) Run(appCtx *actx.Context) error {
	return applyMath(appCtx, c.Key, client.Add, c.Value)
}

// The Sub command subtracts a number from the value of a key.
type Sub struct {
	Key   string `arg:"" help:"The key holding a numeric value."`
	Value string `arg:"" help:"The number to subtract."`
}

// Run the sub command.
func (c *Sub) Run(appCtx *actx.Context) error {
	return applyMath(appCtx, c.Key, client.Subtract, c.Value)
}

func applyMath(appCtx *actx.Context, key string, op client.Operator, arg string) error {
	n, err := numberArg(arg)
	if err != nil {
		return err
	}
	conf, err := appCtx.Client.Math(appCtx.Ctx, key, op, n)
	if err != nil {
		return err
	}
	appCtx.Logger.Debug("applied math operation",
		"key", key, "operator", op.String(), "operation", conf)

	return nil
}
