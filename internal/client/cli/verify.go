package cli

import (
	"context"
	"fmt"
)

// runVerify подтверждает аккаунт токеном из письма.
// Токен можно передать аргументом или ввести интерактивно.
func (c *Cli) runVerify(ctx context.Context, args []string) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Account Verification ===")
	c.io.Println()

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		input, err := c.io.ReadInput("Verification token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = input
	}

	if token == "" {
		return fmt.Errorf("verification token is required")
	}

	if err := c.apiClient.Verify(ctx, token); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Account verified! Run 'sinaricell login' to sign in.")

	return nil
}
