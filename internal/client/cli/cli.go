package cli

import (
	"context"
	"fmt"

	"github.com/sinaricell/storefront/internal/client/api"
	"github.com/sinaricell/storefront/internal/client/auth"
	"github.com/sinaricell/storefront/internal/client/catalog"
	"github.com/sinaricell/storefront/internal/client/iocli"
	"github.com/sinaricell/storefront/internal/client/storage"
)

// Cli связывает команды терминального клиента с сервисами
type Cli struct {
	io             iocli.IO
	apiClient      *api.Client
	authService    *auth.Service
	catalogService *catalog.Service
	guard          *auth.Guard
	cooldowns      storage.CooldownStorage
	emails         storage.EmailCacheStorage
}

func New(
	io iocli.IO,
	apiClient *api.Client,
	authService *auth.Service,
	catalogService *catalog.Service,
	guard *auth.Guard,
	cooldowns storage.CooldownStorage,
	emails storage.EmailCacheStorage,
) *Cli {
	return &Cli{
		io:             io,
		apiClient:      apiClient,
		authService:    authService,
		catalogService: catalogService,
		guard:          guard,
		cooldowns:      cooldowns,
		emails:         emails,
	}
}

// requireGuest отклоняет guest-only команды при наличии сессии
func (c *Cli) requireGuest(ctx context.Context) error {
	if c.guard.GuestOnly(ctx) == auth.DecisionRedirectHome {
		return fmt.Errorf("already logged in. Run 'sinaricell logout' first")
	}
	return nil
}

// requireMember отклоняет member-only команды без сессии
func (c *Cli) requireMember(ctx context.Context) error {
	if c.guard.MemberOnly(ctx) == auth.DecisionRedirectLogin {
		return fmt.Errorf("not authenticated. Please run 'sinaricell login' first")
	}
	return nil
}

func PrintUsage() {
	fmt.Println("Sinari Cell Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sinaricell [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH        Path to local database (default: sinaricell.db)")
	fmt.Println("  --cache PATH     Path to local catalog cache (default: sinaricell-catalog.db)")
	fmt.Println("  --config PATH    Path to JSON config file")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SINARICELL_SERVER    overrides --server")
	fmt.Println("  SINARICELL_DB        overrides --db")
	fmt.Println("  SINARICELL_CACHE     overrides --cache")
	fmt.Println("  SINARICELL_CONFIG    overrides --config")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register new account (email verification required)")
	fmt.Println("  login                   Login with email or username")
	fmt.Println("  google [CODE]           Login with a Google authorization code")
	fmt.Println("  logout                  Logout and delete local session")
	fmt.Println("  status                  Show session status")
	fmt.Println("  verify [TOKEN]          Verify account with token from email")
	fmt.Println("  resend [IDENTIFIER]     Resend verification email")
	fmt.Println("  forgot-password         Request a password reset email")
	fmt.Println("  reset-password [TOKEN]  Set a new password with token from email")
	fmt.Println("  products search         Search the product catalog")
	fmt.Println("  products add            Add a product (admin only)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  sinaricell register")
	fmt.Println("  sinaricell login")
	fmt.Println("  sinaricell products search -name 'lcd iphone' -brand APPLE")
	fmt.Println("  sinaricell products search -cached -category BATTERY")
	fmt.Println("  sinaricell --server https://api.sinaricell.example login")
}
