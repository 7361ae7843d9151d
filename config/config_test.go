package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultCarriesBothVenues(t *testing.T) {
	cfg := Default()
	bm, ok := cfg.Venues[VenueBitmart]
	require.True(t, ok)
	require.Equal(t, "https://api-cloud.bitmart.com", bm.REST["spot"])
	require.Equal(t, 10*time.Second, bm.HTTPTimeout)
	require.True(t, bm.MarketBuyRequiresPrice())

	gate, ok := cfg.Venues[VenueGate]
	require.True(t, ok)
	require.Equal(t, "https://api.gateio.ws/api/v4", gate.REST["spot"])
	require.Equal(t, "usdt", gate.DefaultSettle)
}

func TestLoadOverlaysYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "venuekit.yaml")
	data := `
venues:
  bitmart:
    defaultType: swap
    createMarketBuyOrderRequiresPrice: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("BITMART_API_KEY", "key-1")
	t.Setenv("BITMART_API_SECRET", "secret-1")
	t.Setenv("BITMART_UID", "uid-1")

	cfg, err := Load(path)
	require.NoError(t, err)
	bm := cfg.Venues[VenueBitmart]
	require.Equal(t, "swap", bm.DefaultType)
	require.False(t, bm.MarketBuyRequiresPrice())
	require.Equal(t, "key-1", bm.Credentials.APIKey)
	require.Equal(t, "uid-1", bm.Credentials.UID)
	require.True(t, bm.Credentials.Configured())
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestCredentialsConfigured(t *testing.T) {
	require.False(t, Credentials{APIKey: "k"}.Configured())
	require.True(t, Credentials{APIKey: "k", APISecret: "s"}.Configured())
}
