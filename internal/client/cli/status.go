package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sinaricell/storefront/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	info, err := c.authService.SessionInfo(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'sinaricell login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", info.Username)
	c.io.Printf("Email:    %s\n", info.Email)
	if info.Name != "" {
		c.io.Printf("Name:     %s\n", info.Name)
	}
	if info.Role != "" {
		c.io.Printf("Role:     %s\n", info.Role)
	}
	c.io.Printf("Saved:    %s\n", info.SavedAt.Format(time.RFC3339))

	// Срок жизни токена известен только если это разбираемый JWT
	if info.HasExpiry {
		c.io.Printf("Token expires: %s\n", info.ExpiresAt.Format(time.RFC3339))
		if remaining := time.Until(info.ExpiresAt); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("⚠️  Token has expired. Please login again.")
		}
	}

	return nil
}
