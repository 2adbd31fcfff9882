package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sinaricell/storefront/internal/client/verify"
	"github.com/sinaricell/storefront/internal/validation"
)

// runForgotPassword запрашивает письмо восстановления пароля.
// Повторные запросы ограничены тем же cooldown, что и resend.
func (c *Cli) runForgotPassword(ctx context.Context) error {
	if err := c.requireGuest(ctx); err != nil {
		return err
	}

	c.io.Println("=== Forgot Password ===")
	c.io.Println()

	identifier, err := c.io.ReadInput("Email or username: ")
	if err != nil {
		return fmt.Errorf("failed to read identifier: %w", err)
	}

	if err := validation.ValidateIdentifier(identifier); err != nil {
		return fmt.Errorf("invalid identifier: %w", err)
	}

	ctrl := verify.NewController(ctx, c.authService, c.apiClient, c.cooldowns, c.emails, identifier, nil)
	defer ctrl.Close()

	err = ctrl.RequestPasswordReset(ctx)
	if err != nil {
		switch {
		case errors.Is(err, verify.ErrCooldownActive):
			return fmt.Errorf("please wait %d second(s) before requesting another email", ctrl.CooldownRemaining())
		case errors.Is(err, verify.ErrDailyLimitReached):
			return fmt.Errorf("daily email limit reached, try again tomorrow")
		}

		state := ctrl.State()
		if state.Phase == verify.PhaseDailyLimitReached {
			return fmt.Errorf("daily email limit reached, try again tomorrow")
		}
		if state.Phase == verify.PhaseAwaitingVerification && ctrl.CooldownRemaining() > 0 {
			return fmt.Errorf("please wait %d second(s) before requesting another email", ctrl.CooldownRemaining())
		}
		return err
	}

	state := ctrl.State()
	target := state.ResolvedEmail
	if target == "" {
		target = state.Identifier
	}

	c.io.Println()
	c.io.Printf("✓ Password reset email sent to %s.\n", target)
	c.io.Println("Run 'sinaricell reset-password' with the token from the email.")

	return nil
}
