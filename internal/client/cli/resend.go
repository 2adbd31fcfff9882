package cli

import (
	"context"
	"fmt"

	"github.com/sinaricell/storefront/internal/client/verify"
	"github.com/sinaricell/storefront/internal/validation"
)

// runResend повторно запрашивает письмо с подтверждением.
// Идентификатор можно передать аргументом или ввести интерактивно.
func (c *Cli) runResend(ctx context.Context, args []string) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Resend Verification Email ===")
	c.io.Println()

	var identifier string
	if len(args) > 0 {
		identifier = args[0]
	} else {
		input, err := c.io.ReadInput("Email or username: ")
		if err != nil {
			return fmt.Errorf("failed to read identifier: %w", err)
		}
		identifier = input
	}

	if err := validation.ValidateIdentifier(identifier); err != nil {
		return fmt.Errorf("invalid identifier: %w", err)
	}

	ctrl := verify.NewController(ctx, c.authService, c.apiClient, c.cooldowns, c.emails, identifier, nil)
	defer ctrl.Close()

	c.resendStep(ctx, ctrl)

	// Диалог продолжается: пользователь может сразу ввести токен
	return c.verificationLoop(ctx, ctrl)
}
