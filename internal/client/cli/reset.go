package cli

import (
	"context"
	"fmt"

	"github.com/sinaricell/storefront/internal/validation"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// runResetPassword устанавливает новый пароль по токену из письма
func (c *Cli) runResetPassword(ctx context.Context, args []string) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Reset Password ===")
	c.io.Println()

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		input, err := c.io.ReadInput("Reset token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = input
	}

	if token == "" {
		return fmt.Errorf("reset token is required")
	}

	password, err := c.io.ReadPassword("New password (min 8 chars, mixed case, digit, special): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	c.io.Println()
	c.io.Println("Resetting password...")

	_, err = c.apiClient.ResetPassword(ctx, pkgapi.ResetPasswordRequest{
		Token:              token,
		NewPassword:        password,
		ConfirmNewPassword: confirm,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Password updated! Run 'sinaricell login' to sign in.")

	return nil
}
