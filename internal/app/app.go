// Package app wires the mediamix components together for the CLI and the
// HTTP server.
//
// This package enables mediamix to:
// - Pick durable storage (MongoDB or a local JSON file)
// - Build the Pexels client behind an optional proxy
// - Record recent searches and publish events around user intents
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gauthierbraillon/mediamix/internal/aggregator"
	"github.com/gauthierbraillon/mediamix/internal/config"
	"github.com/gauthierbraillon/mediamix/internal/download"
	"github.com/gauthierbraillon/mediamix/internal/events"
	"github.com/gauthierbraillon/mediamix/internal/favorites"
	"github.com/gauthierbraillon/mediamix/internal/fetcher"
	"github.com/gauthierbraillon/mediamix/internal/pagination"
	"github.com/gauthierbraillon/mediamix/internal/pexels"
	"github.com/gauthierbraillon/mediamix/internal/prefs"
	"github.com/gauthierbraillon/mediamix/internal/store"
	"github.com/gauthierbraillon/mediamix/pkg/apikey"
)

// Provider names the stored API key.
const Provider = "pexels"

// ErrNoAPIKey is returned by operations that need the media API without a key.
var ErrNoAPIKey = errors.New("not authenticated (run 'mediamix auth <api-key>' or set PEXELS_API_KEY)")

// App holds the wired components. Fields are safe for concurrent use.
type App struct {
	Config     config.Config
	Client     *pexels.Client
	Feed       *aggregator.Aggregator
	Driver     *pagination.Driver
	Favorites  *favorites.Store
	Prefs      *prefs.Prefs
	Downloader *download.Downloader
	Events     events.Publisher
	KV         store.Store

	apiKey  string
	closers []func(context.Context) error
}

// Option overrides a component, mostly for tests.
type Option func(*options)

type options struct {
	kv         store.Store
	publisher  events.Publisher
	clientOpts []pexels.ClientOption
}

func WithStore(kv store.Store) Option {
	return func(o *options) { o.kv = kv }
}

func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

func WithClientOptions(opts ...pexels.ClientOption) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, opts...) }
}

// New builds an App from cfg. A missing API key is not an error here;
// see RequireKey.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg}

	kv, err := a.openStore(ctx, o.kv)
	if err != nil {
		return nil, err
	}
	a.KV = kv

	transport, err := pexels.NewTransport(cfg.Proxy)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.apiKey, err = apikey.NewStorage(cfg.ConfigDir).Resolve(Provider, cfg.APIKey)
	if err != nil && !errors.Is(err, apikey.ErrKeyNotFound) {
		log.Printf("[app] could not read stored api key: %v", err)
	}

	clientOpts := []pexels.ClientOption{
		pexels.WithBaseURL(cfg.APIURL),
		pexels.WithHTTPClient(&http.Client{Timeout: 30 * time.Second, Transport: transport}),
		pexels.WithCacheTTL(cfg.CacheTTL),
	}
	a.Client = pexels.NewClient(a.apiKey, append(clientOpts, o.clientOpts...)...)

	a.Feed = aggregator.New(fetcher.New(a.Client))
	a.Driver = pagination.New(a.Feed)

	a.Favorites, err = favorites.Load(ctx, kv)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	theme, err := prefs.ParseTheme(cfg.Theme)
	if err != nil {
		theme = prefs.ThemeLight
	}
	a.Prefs = prefs.New(kv, theme)

	a.Downloader = download.New(download.Options{
		OutputDir: cfg.DownloadDir,
		Transport: transport,
	})

	a.Events = a.openPublisher(o.publisher)

	return a, nil
}

func (a *App) openStore(ctx context.Context, kv store.Store) (store.Store, error) {
	if kv != nil {
		return kv, nil
	}
	if a.Config.MongoURI == "" {
		return store.NewFileStore(a.Config.StatePath()), nil
	}

	ms, err := store.NewMongoStore(ctx, a.Config.MongoURI)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, ms.Close)
	log.Printf("[app] using mongodb storage")
	return ms, nil
}

func (a *App) openPublisher(p events.Publisher) events.Publisher {
	if p != nil {
		return p
	}
	if a.Config.NATSURL == "" {
		return events.NopPublisher{}
	}

	np, err := events.NewNATSPublisher(a.Config.NATSURL, a.Config.NATSSubject)
	if err != nil {
		log.Printf("[app] events disabled: %v", err)
		return events.NopPublisher{}
	}
	a.closers = append(a.closers, func(context.Context) error {
		np.Close()
		return nil
	})
	return np
}

// RequireKey reports ErrNoAPIKey when no API key is configured or stored.
func (a *App) RequireKey() error {
	if a.apiKey == "" {
		return ErrNoAPIKey
	}
	return nil
}

// Close releases storage and bus connections.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Printf("[app] close: %v", err)
		}
	}
	a.closers = nil
}

// SaveAPIKey stores key for later runs and uses it from now on.
func (a *App) SaveAPIKey(key string) error {
	if err := apikey.NewStorage(a.Config.ConfigDir).Save(Provider, key); err != nil {
		return fmt.Errorf("failed to save api key: %w", err)
	}
	return nil
}
