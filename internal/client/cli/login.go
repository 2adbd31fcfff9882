package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sinaricell/storefront/internal/client/auth"
	"github.com/sinaricell/storefront/internal/client/verify"
)

func (c *Cli) runLogin(ctx context.Context) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем идентификатор
	identifier, err := c.io.ReadInput("Email or username: ")
	if err != nil {
		return fmt.Errorf("failed to read identifier: %w", err)
	}

	// Запрашиваем пароль
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	ctrl := verify.NewController(ctx, c.authService, c.apiClient, c.cooldowns, c.emails, identifier, nil)
	defer ctrl.Close()

	result, err := ctrl.SubmitLogin(ctx, password)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotVerified) {
			c.io.Println()
			c.io.Println("⚠️  Your account is not verified yet.")
			return c.verificationLoop(ctx, ctrl)
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Printf("Email:    %s\n", result.Email)
	if result.Role != "" {
		c.io.Printf("Role:     %s\n", result.Role)
	}
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
