// Package config centralises runtime configuration for venuekit adapters.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/venuekit/venuekit/internal/telemetry"
)

// Venue names a supported exchange integration.
type Venue string

const (
	// VenueBitmart identifies the BitMart integration.
	VenueBitmart Venue = "bitmart"
	// VenueGate identifies the Gate.io integration.
	VenueGate Venue = "gateio"
)

// Credentials captures API credentials used for authenticated requests.
// UID is required by BitMart only; it enters the signed canonical string.
type Credentials struct {
	APIKey    string `yaml:"apiKey"`
	APISecret string `yaml:"apiSecret"`
	UID       string `yaml:"uid"`
}

// Configured reports whether the credential set can sign private calls.
func (c Credentials) Configured() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.APISecret) != ""
}

// VenueSettings aggregates transport, credential, and behaviour configuration
// for one venue.
type VenueSettings struct {
	// REST maps a market class ("spot", "contract", "futures", "delivery")
	// to its base URL.
	REST        map[string]string `yaml:"rest"`
	Credentials Credentials       `yaml:"credentials"`
	HTTPTimeout time.Duration     `yaml:"httpTimeout"`

	// WeightsPerSecond feeds the transport rate limiter; endpoint tables
	// declare relative weights against this budget.
	WeightsPerSecond float64 `yaml:"weightsPerSecond"`

	// DefaultType selects the market class assumed when a call carries no
	// explicit type: "spot" or "swap".
	DefaultType string `yaml:"defaultType"`
	// DefaultMarginMode is "" (none), "cross", or "isolated".
	DefaultMarginMode string `yaml:"defaultMarginMode"`
	// DefaultSettle selects the settlement currency for contract calls that
	// do not name one ("usdt").
	DefaultSettle string `yaml:"defaultSettle"`

	// BrokerID is sent on BitMart private calls as X-BM-BROKER-ID.
	BrokerID string `yaml:"brokerId"`

	// CreateMarketBuyOrderRequiresPrice controls market-buy handling: when
	// true (the default) a market buy without price is rejected and cost is
	// derived as amount*price; when false the amount argument is already the
	// quote-currency cost.
	CreateMarketBuyOrderRequiresPrice *bool `yaml:"createMarketBuyOrderRequiresPrice"`

	// Networks maps unified network codes to the venue's chain identifiers.
	Networks map[string]string `yaml:"networks"`
	// DefaultNetworks picks the network assumed per currency code.
	DefaultNetworks map[string]string `yaml:"defaultNetworks"`
}

// MarketBuyRequiresPrice resolves the tri-state option with its default.
func (s VenueSettings) MarketBuyRequiresPrice() bool {
	if s.CreateMarketBuyOrderRequiresPrice == nil {
		return true
	}
	return *s.CreateMarketBuyOrderRequiresPrice
}

// Logging configures the process logger.
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
}

// Settings is the venuekit configuration tree.
type Settings struct {
	Venues    map[Venue]VenueSettings `yaml:"venues"`
	Logging   Logging                 `yaml:"logging"`
	Telemetry telemetry.Config        `yaml:"telemetry"`
}

// Default returns the default configuration: production endpoints, no
// credentials, conservative rate budgets.
func Default() Settings {
	return Settings{
		Venues: map[Venue]VenueSettings{
			VenueBitmart: {
				REST: map[string]string{
					"spot":     "https://api-cloud.bitmart.com",
					"contract": "https://api-cloud-v2.bitmart.com",
				},
				HTTPTimeout:      10 * time.Second,
				WeightsPerSecond: 10,
				DefaultType:      "spot",
				DefaultSettle:    "usdt",
				BrokerID:         "venuekitBitmart0",
				DefaultNetworks: map[string]string{
					"USDT": "TRC20",
					"BTC":  "BTC",
					"ETH":  "ERC20",
				},
			},
			VenueGate: {
				REST: map[string]string{
					"spot":     "https://api.gateio.ws/api/v4",
					"futures":  "https://api.gateio.ws/api/v4",
					"delivery": "https://api.gateio.ws/api/v4",
					"wallet":   "https://api.gateio.ws/api/v4",
					"margin":   "https://api.gateio.ws/api/v4",
				},
				HTTPTimeout:      10 * time.Second,
				WeightsPerSecond: 10,
				DefaultType:      "spot",
				DefaultSettle:    "usdt",
			},
		},
		Logging: Logging{Level: "info"},
	}
}

// Load builds Settings from defaults, an optional YAML file, an optional .env
// file, and environment variables, in that precedence order.
func Load(path string) (Settings, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Settings{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	// .env is optional; missing files are not an error.
	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Settings) {
	for venue, prefix := range map[Venue]string{
		VenueBitmart: "BITMART",
		VenueGate:    "GATE",
	} {
		settings := cfg.Venues[venue]
		if v := strings.TrimSpace(os.Getenv(prefix + "_API_KEY")); v != "" {
			settings.Credentials.APIKey = v
		}
		if v := strings.TrimSpace(os.Getenv(prefix + "_API_SECRET")); v != "" {
			settings.Credentials.APISecret = v
		}
		if v := strings.TrimSpace(os.Getenv(prefix + "_UID")); v != "" {
			settings.Credentials.UID = v
		}
		cfg.Venues[venue] = settings
	}
	if v := strings.TrimSpace(os.Getenv("VENUEKIT_LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("VENUEKIT_OTLP_ENDPOINT")); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
}
