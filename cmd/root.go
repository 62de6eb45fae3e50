package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/config"
	"github.com/yunisnasibov/e-ticaret-12/internal/fakestore"
	"github.com/yunisnasibov/e-ticaret-12/internal/httputil"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
	"github.com/yunisnasibov/e-ticaret-12/internal/transport"
	"golang.org/x/time/rate"
)

var (
	cfg       *config.Config
	cfgErr    error
	closeFunc func() error
)

var rootCmd = &cobra.Command{
	Use:   "e-ticaret",
	Short: "e-ticaret - storefront CLI & MCP server",
	Long:  "Browse the product catalog, keep a cart and favorites, check out and review orders from the terminal or over MCP.",
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeFunc != nil {
			if err := closeFunc(); err != nil {
				log.Printf("close storage: %v", err)
			}
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("catalog", "", "Product catalog (default fakestore)")
	rootCmd.PersistentFlags().String("storage", "", "Storage driver: file, redis, memory")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory of the file storage driver")
	rootCmd.PersistentFlags().Bool("respect-robots", false, "Respect robots.txt rules")
	rootCmd.PersistentFlags().String("proxy", "", "Proxy URL for catalog requests (http, https, socks5)")
	rootCmd.PersistentFlags().String("format", "table", "Output format: json, table")
}

func initConfig() {
	cfg = config.DefaultConfig()

	if path, _ := rootCmd.PersistentFlags().GetString("config"); path != "" {
		cfgErr = cfg.LoadFile(path)
	}
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("catalog"); v != "" {
		cfg.Catalog = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("storage"); v != "" {
		cfg.StorageDriver = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if rootCmd.PersistentFlags().Changed("respect-robots") {
		cfg.RespectRobots, _ = rootCmd.PersistentFlags().GetBool("respect-robots")
	}
	if v, _ := rootCmd.PersistentFlags().GetString("proxy"); v != "" {
		cfg.ProxyURL = v
	}
}

// buildHTTPClient creates the rate-limited catalog HTTP client from config.
func buildHTTPClient() (*http.Client, error) {
	var base http.RoundTripper = httputil.DefaultTransport()
	if cfg.ProxyURL != "" {
		proxied, err := transport.NewProxyTransport(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}
		base = proxied
	}

	robots := transport.NewRobotsChecker(&http.Client{Timeout: cfg.FetchTimeout}, cfg.RespectRobots)

	return httputil.NewHTTPClient(&transport.Transport{
		Base:        base,
		UserAgent:   cfg.UserAgent,
		Robots:      robots,
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}), nil
}

// initCatalogs registers all available product catalogs.
func initCatalogs() error {
	client, err := buildHTTPClient()
	if err != nil {
		return err
	}
	platform.Register("fakestore", fakestore.NewClient(client,
		fakestore.WithBaseURL(cfg.APIBaseURL),
		fakestore.WithTimeout(cfg.FetchTimeout),
		fakestore.WithCategoriesTimeout(cfg.CategoriesTimeout),
	))
	return nil
}

// openShop wires the configured catalog and storage into a loaded shop.
func openShop(ctx context.Context) (*shop.Shop, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if err := initCatalogs(); err != nil {
		return nil, err
	}
	catalog, err := platform.Get(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(platform.List(), ", "))
	}

	st, err := storage.Open(ctx, storage.Options{
		Driver:        cfg.StorageDriver,
		DataDir:       cfg.DataDir,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if c, ok := st.(io.Closer); ok {
		closeFunc = c.Close
	}

	s := shop.New(catalog, shop.NewStores(st),
		shop.WithDefaultCountry(cfg.DefaultCountry),
		shop.WithMaxConcurrent(cfg.MaxConcurrent),
	)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
