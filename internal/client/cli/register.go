package cli

import (
	"context"
	"fmt"

	"github.com/sinaricell/storefront/internal/client/verify"
	"github.com/sinaricell/storefront/internal/validation"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Registration ===")
	c.io.Println()

	name, err := c.io.ReadInput("Full name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password (min 8 chars, mixed case, digit, special): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	// Проверяем поля до отправки, как это делает форма регистрации
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering account...")

	ctrl := verify.NewController(ctx, c.authService, c.apiClient, c.cooldowns, c.emails, email, nil)
	defer ctrl.Close()

	err = ctrl.SubmitRegister(ctx, pkgapi.RegisterRequest{
		Name:     name,
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("A verification email has been sent to %s.\n", email)

	return c.verificationLoop(ctx, ctrl)
}
