// Command mindful-admin inspects and revokes UI sessions in the session store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/target/mindful-ui/internal/bootstrap"
	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

// sessionAdmin is the part of the auth service the CLI drives.
type sessionAdmin interface {
	ListSessions(ctx context.Context, limit int) ([]domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// connectFn opens the session store. The returned func releases it.
type connectFn func(ctx context.Context) (sessionAdmin, func(), error)

func main() {
	if err := newRootCmd(connectFromEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal failure to shell scripts
	}
}

func newRootCmd(connect connectFn) *cobra.Command {
	root := &cobra.Command{
		Use:           "mindful-admin",
		Short:         "Operate the Mindful UI session store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSessionsCmd(connect))
	return root
}

func newSessionsCmd(connect connectFn) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List, show or revoke sessions",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List active sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(cmd.Context(), connect, func(ctx context.Context, admin sessionAdmin) error {
				sessions, err := admin.ListSessions(ctx, limit)
				if err != nil {
					return fmt.Errorf("list sessions: %w", err)
				}
				return printSessions(cmd.OutOrStdout(), sessions)
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 100, "Maximum number of sessions to print")

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd.Context(), connect, func(ctx context.Context, admin sessionAdmin) error {
				s, err := admin.GetSession(ctx, args[0])
				if err != nil {
					return fmt.Errorf("get session %s: %w", args[0], err)
				}
				return printSession(cmd.OutOrStdout(), *s)
			})
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke <session-id>...",
		Short: "Sign sessions out",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd.Context(), connect, func(ctx context.Context, admin sessionAdmin) error {
				for _, id := range args {
					if err := admin.Logout(ctx, id); err != nil {
						return fmt.Errorf("revoke session %s: %w", id, err)
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, show, revoke)
	return cmd
}

func withAdmin(ctx context.Context, connect connectFn, fn func(context.Context, sessionAdmin) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	admin, release, err := connect(ctx)
	if err != nil {
		return err
	}
	if release != nil {
		defer release()
	}
	return fn(ctx, admin)
}

// connectFromEnv builds the auth service from the same environment as the server.
func connectFromEnv(ctx context.Context) (sessionAdmin, func(), error) {
	logger := bootstrap.InitLogger()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := bootstrap.ConnectRedis(ctx, bootstrap.RedisConnConfig{RedisConfig: cfg.Redis, Logger: logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	release := func() {
		if cerr := client.Close(); cerr != nil {
			logger.Error("close redis failed", "error", cerr)
		}
	}

	auth := bootstrap.BuildAuthService(bootstrap.AuthConfig{
		Auth:          cfg.Auth,
		RedisClient:   client,
		SessionPrefix: cfg.Redis.SessionPrefix,
		Logger:        logger,
	})
	if auth.Service == nil {
		release()
		return nil, nil, fmt.Errorf("auth is not configured (AUTH_MODE=%s)", cfg.Auth.Mode)
	}
	return auth.Service, release, nil
}

