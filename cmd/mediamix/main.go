// Package main provides the mediamix CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/mediamix/internal/aggregator"
	"github.com/gauthierbraillon/mediamix/internal/app"
	"github.com/gauthierbraillon/mediamix/internal/config"
	"github.com/gauthierbraillon/mediamix/internal/display"
	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/metrics"
	"github.com/gauthierbraillon/mediamix/internal/prefs"
	"github.com/gauthierbraillon/mediamix/internal/server"
	"github.com/gauthierbraillon/mediamix/pkg/browser"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	info, _ := debug.ReadBuildInfo()
	version = resolveVersion(version, info)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version and falls back to the module
// version recorded by go install.
func resolveVersion(ldflags string, info *debug.BuildInfo) string {
	if ldflags != "dev" && ldflags != "" {
		return ldflags
	}
	if info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// newRootCmd creates the root command for mediamix CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "mediamix",
		Short:   "Browse Pexels photos and videos from the terminal",
		Long:    "Mediamix searches Pexels photos and videos, merges them into one feed, and keeps your favorites.",
		Version: version,
	}

	rootCmd.SetVersionTemplate("mediamix version {{.Version}}\n")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newCategoryCmd())
	rootCmd.AddCommand(newFavoritesCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newClearCacheCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// withApp loads configuration, builds the app and closes it after fn.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(a)
}

func formatter(ctx context.Context, a *app.App) *display.TerminalFormatter {
	return display.NewTerminalFormatter(a.Prefs.Theme(ctx))
}

type feedFlags struct {
	pages int
	kind  string
	limit int
}

func (f *feedFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.pages, "pages", "p", 1, "Number of pages to load")
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "Filter by kind (photo, video)")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "Maximum number of items to display (0 for all)")
}

func (f *feedFlags) options() (aggregator.FeedOptions, error) {
	opts := aggregator.FeedOptions{Limit: f.limit}
	if f.pages < 1 {
		return opts, fmt.Errorf("--pages must be at least 1")
	}
	if f.kind != "" {
		kind, err := media.ParseKind(f.kind)
		if err != nil {
			return opts, err
		}
		opts.Kinds = []media.Kind{kind}
	}
	return opts, nil
}

// runFeed performs load, scrolls for the remaining pages and prints the feed.
func runFeed(cmd *cobra.Command, f *feedFlags, load func(context.Context, *app.App) (aggregator.Result, error)) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	return withApp(ctx, func(a *app.App) error {
		if err := a.RequireKey(); err != nil {
			return err
		}
		if _, err := load(ctx, a); err != nil {
			return err
		}
		for i := 1; i < f.pages; i++ {
			loaded, _, err := a.Scroll(ctx)
			if err != nil {
				return err
			}
			if !loaded {
				break
			}
		}

		out := formatter(ctx, a)
		fmt.Fprint(cmd.OutOrStdout(), out.FormatFeed(a.Feed.GetFeed(opts), a.Favorites.Contains))
		fmt.Fprint(cmd.OutOrStdout(), out.FormatSnapshot(a.Driver.Snapshot(), a.Feed.Len()))
		return nil
	})
}

// newSearchCmd creates the search subcommand.
func newSearchCmd() *cobra.Command {
	var f feedFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search photos and videos",
		Long:  "Search Pexels photos and videos and display the merged feed. The query is added to recent searches.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runFeed(cmd, &f, func(ctx context.Context, a *app.App) (aggregator.Result, error) {
				return a.Search(ctx, query)
			})
		},
	}

	f.register(cmd)
	return cmd
}

// newCategoryCmd creates the category subcommand.
func newCategoryCmd() *cobra.Command {
	var f feedFlags

	cmd := &cobra.Command{
		Use:       "category <name>",
		Short:     "Browse a predefined category",
		Long:      fmt.Sprintf("Browse a category such as %s.", strings.Join(prefs.DefaultRecent, ", ")),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: prefs.DefaultRecent,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return runFeed(cmd, &f, func(ctx context.Context, a *app.App) (aggregator.Result, error) {
				return a.SelectCategory(ctx, name)
			})
		},
	}

	f.register(cmd)
	return cmd
}

// newFavoritesCmd creates the favorites subcommand.
func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or toggle favorites",
		Long:  "List favorite items, or toggle an item by id.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFavorites(cmd)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFavorites(cmd)
		},
	}

	var query string
	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a favorite by id (e.g. photo-2014422)",
		Long:  "Toggle an item from your favorites or from the last loaded feed. With --query the query is searched first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app.App) error {
				favorited, item, err := a.ToggleFavoriteByID(ctx, args[0])
				if errors.Is(err, app.ErrUnknownItem) && query != "" {
					if err := a.RequireKey(); err != nil {
						return err
					}
					if _, err := a.Search(ctx, query); err != nil {
						return err
					}
					favorited, item, err = a.ToggleFavoriteByID(ctx, args[0])
				}
				if err != nil {
					return err
				}

				if favorited {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites.\n", item.ID)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites.\n", item.ID)
				}
				return nil
			})
		},
	}
	toggleCmd.Flags().StringVarP(&query, "query", "q", "", "Search this query first when the id is not known")

	cmd.AddCommand(listCmd, toggleCmd)
	return cmd
}

func listFavorites(cmd *cobra.Command) error {
	ctx := cmd.Context()
	return withApp(ctx, func(a *app.App) error {
		items := a.Favorites.List()
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter(ctx, a).FormatFeed(items, a.Favorites.Contains))
		return nil
	})
}

// newThemeCmd creates the theme subcommand.
func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the color theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app.App) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", a.Prefs.Theme(ctx))
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app.App) error {
				theme, err := a.ToggleTheme(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
				return nil
			})
		},
	})

	return cmd
}

// newRecentCmd creates the recent subcommand.
func newRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app.App) error {
				fmt.Fprint(cmd.OutOrStdout(), formatter(ctx, a).FormatRecent(a.Prefs.Recent(ctx)))
				return nil
			})
		},
	}
}

// newDownloadCmd creates the download subcommand.
func newDownloadCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a photo or video",
		Long:  "Download an asset into MEDIAMIX_DOWNLOAD_DIR as <name>-<timestamp>.<ext>.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			return withApp(ctx, func(a *app.App) error {
				res, err := a.Download(ctx, args[0], name)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter(ctx, a).FormatDownload(res))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Base file name (defaults to \"download\")")
	return cmd
}

// newOpenCmd creates the open subcommand.
func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open a media page or asset in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := browser.Validate(args[0]); err != nil {
				return err
			}
			if err := browser.Open(args[0]); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", args[0])
			}
			return nil
		},
	}
}

// newAuthCmd creates the auth subcommand.
func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth <api-key>",
		Short: "Save your Pexels API key",
		Long:  "Store a Pexels API key in the config directory. PEXELS_API_KEY takes precedence when set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return errors.New("api key must not be empty")
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				if err := a.SaveAPIKey(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "API key saved to: %s\n", a.Config.ConfigDir)
				return nil
			})
		},
	}
}

// newClearCacheCmd creates the clear-cache subcommand.
func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Clear cached results (favorites, theme and recent searches are kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app.App) error {
				removed, err := a.ClearCache(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared (favorites & theme preserved). Removed %d record(s).\n", removed)
				return nil
			})
		},
	}
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "View mediamix configuration settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config directory: %s\n", cfg.ConfigDir)
			if cfg.MongoURI != "" {
				fmt.Fprintln(out, "Storage: mongodb")
			} else {
				fmt.Fprintf(out, "Storage: %s\n", cfg.StatePath())
			}
			fmt.Fprintf(out, "API URL: %s\n", cfg.APIURL)
			fmt.Fprintf(out, "Default query: %s\n", cfg.Query)
			fmt.Fprintf(out, "Download directory: %s\n", cfg.DownloadDir)
			fmt.Fprintf(out, "Cache TTL: %s\n", cfg.CacheTTL)
			if cfg.NATSURL != "" {
				fmt.Fprintf(out, "Events: %s (%s.*)\n", cfg.NATSURL, cfg.NATSSubject)
			}
			return nil
		},
	}
}

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the media browser HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gin.SetMode(gin.ReleaseMode)
			metrics.Init(version)

			return withApp(ctx, func(a *app.App) error {
				if addr == "" {
					addr = a.Config.Addr
				}
				if err := a.RequireKey(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				} else if _, err := a.LoadDefault(ctx); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: initial load failed: %v\n", err)
				}
				return server.Run(ctx, a, addr)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (defaults to MEDIAMIX_ADDR or :8080)")
	return cmd
}
