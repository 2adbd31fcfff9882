package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sinaricell/storefront/internal/client/verify"
)

// verificationLoop ведет интерактивный диалог подтверждения аккаунта:
// ввод токена из письма, повторная отправка с учетом cooldown, выход.
func (c *Cli) verificationLoop(ctx context.Context, ctrl *verify.Controller) error {
	c.io.Println()
	c.io.Println("=== Email Verification ===")
	c.io.Println("Check your inbox for the verification email.")

	for {
		c.io.Println()

		state := ctrl.State()
		if state.Phase == verify.PhaseVerified {
			c.io.Println("✓ Account verified! Run 'sinaricell login' to sign in.")
			return nil
		}
		if state.Phase == verify.PhaseDailyLimitReached {
			c.io.Println("⚠️  Daily resend limit reached. Try again tomorrow.")
			return nil
		}

		if remaining := ctrl.CooldownRemaining(); remaining > 0 {
			c.io.Printf("You can request a new email in %d second(s).\n", remaining)
		}

		choice, err := c.io.ReadInput("[t] enter token, [r] resend email, [q] quit: ")
		if err != nil {
			return fmt.Errorf("failed to read choice: %w", err)
		}

		switch choice {
		case "t", "T":
			if err := c.verifyTokenStep(ctx, ctrl); err != nil {
				return err
			}
		case "r", "R":
			c.resendStep(ctx, ctrl)
		case "q", "Q":
			c.io.Println("You can finish verification later with 'sinaricell verify' or 'sinaricell resend'.")
			return nil
		default:
			c.io.Printf("Unknown choice: %s\n", choice)
		}
	}
}

// verifyTokenStep читает токен и подтверждает аккаунт.
// Невалидный токен не прерывает диалог.
func (c *Cli) verifyTokenStep(ctx context.Context, ctrl *verify.Controller) error {
	token, err := c.io.ReadInput("Verification token: ")
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		c.io.Println("Token cannot be empty.")
		return nil
	}

	if err := ctrl.VerifyToken(ctx, token); err != nil {
		c.io.Printf("Verification failed: %s\n", ctrl.State().ErrMessage)
		return nil
	}

	c.io.Println()
	c.io.Println("✓ Account verified! Run 'sinaricell login' to sign in.")
	return nil
}

// resendStep запрашивает повторную отправку письма и печатает итог
func (c *Cli) resendStep(ctx context.Context, ctrl *verify.Controller) {
	err := ctrl.Resend(ctx)
	if err == nil {
		state := ctrl.State()
		target := state.ResolvedEmail
		if target == "" {
			target = state.Identifier
		}
		c.io.Printf("✓ Verification email sent to %s.\n", target)
		return
	}

	switch {
	case errors.Is(err, verify.ErrCooldownActive):
		c.io.Printf("Please wait %d second(s) before requesting another email.\n", ctrl.CooldownRemaining())
	case errors.Is(err, verify.ErrDailyLimitReached):
		c.io.Println("⚠️  Daily resend limit reached. Try again tomorrow.")
	default:
		// Итог уже классифицирован контроллером: wait/limit/verified
		// отразятся в состоянии на следующей итерации цикла
		state := ctrl.State()
		if state.ErrMessage != "" {
			c.io.Printf("Resend failed: %s\n", state.ErrMessage)
		} else {
			c.io.Printf("Resend failed: %v\n", err)
		}
	}
}
