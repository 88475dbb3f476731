package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"library-admin/internal/app"
	"library-admin/internal/core/config"
	"library-admin/internal/core/server"
	"library-admin/internal/domain"
	"library-admin/internal/service"
	"library-admin/internal/transport/http/router"
)

type rootOpts struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Library administration: admin API server and account maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newResetUsersCmd(opts),
		newUsersCmd(opts),
	)
	return root
}

// withApp 读取配置、打开数据库，执行 fn 后释放资源
func withApp(opts *rootOpts, fn func(a *app.App) error) error {
	cfg, err := config.Read(opts.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func newServeCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP API (/admin/v1)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app.App) error {
				if err := a.Seed(cmd.Context()); err != nil {
					a.Log.Error("seed default users", zap.Error(err))
				}
				r := router.NewAdminEngine(a.Log, a.Deps)

				h := a.Cfg.App.Admin
				srv := server.BuildServer(
					server.Addr(h.Host, h.Port), r,
					time.Duration(h.ReadTimeoutSec)*time.Second,
					time.Duration(h.WriteTimeoutSec)*time.Second,
					time.Duration(h.IdleTimeoutSec)*time.Second,
				)
				baseURL := server.BaseURL(h.Host, h.Port)
				a.Log.Info("admin api",
					zap.String("open", baseURL),
					zap.String("health", baseURL+"/health"),
					zap.String("admin_v1", baseURL+"/admin/v1"),
				)
				server.Run(srv, a.Log, "admin api")
				return nil
			})
		},
	}
}

func newSeedCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin/admin and user/user accounts if missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app.App) error {
				created, err := service.SeedDefaultUsers(cmd.Context(), a.Store, a.Log)
				if err != nil {
					return err
				}
				if len(created) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "default users already exist")
				}
				for _, name := range created {
					fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", name)
				}
				return nil
			})
		},
	}
}

func newResetUsersCmd(opts *rootOpts) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset-users",
		Short: "Delete every account and recreate the default users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all accounts without --yes")
			}
			return withApp(opts, func(a *app.App) error {
				removed, err := service.ResetUsers(cmd.Context(), a.Store, a.Log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d accounts\n", removed)
				return printUsers(cmd, a)
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all accounts")
	return cmd
}

func newUsersCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(a *app.App) error { return printUsers(cmd, a) })
		},
	}
}

func printUsers(cmd *cobra.Command, a *app.App) error {
	users, err := a.Store.Users().List(cmd.Context())
	if err != nil {
		return err
	}
	writeUsers(cmd.OutOrStdout(), users)
	return nil
}

func writeUsers(w io.Writer, users []domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tFULL NAME\tADMIN")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", u.ID, u.Username, u.FullName, u.IsAdmin)
	}
	_ = tw.Flush()
}
