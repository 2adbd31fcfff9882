package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду. Ошибка возвращается вызывающему —
// решение о коде выхода принимает main.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "google":
		return c.runGoogleLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "verify":
		return c.runVerify(ctx, args)
	case "resend":
		return c.runResend(ctx, args)
	case "forgot-password":
		return c.runForgotPassword(ctx)
	case "reset-password":
		return c.runResetPassword(ctx, args)
	case "products":
		return c.runProducts(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}
