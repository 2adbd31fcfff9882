package cli

import (
	"context"
	"fmt"
)

// runGoogleLogin обменивает authorization code Google на сессию.
// Код получают в браузере и передают аргументом или вводят интерактивно.
func (c *Cli) runGoogleLogin(ctx context.Context, args []string) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Google Login ===")
	c.io.Println()

	var code string
	if len(args) > 0 {
		code = args[0]
	} else {
		input, err := c.io.ReadInput("Authorization code: ")
		if err != nil {
			return fmt.Errorf("failed to read authorization code: %w", err)
		}
		code = input
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	result, err := c.authService.GoogleLogin(ctx, code)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Printf("Email:    %s\n", result.Email)

	return nil
}
