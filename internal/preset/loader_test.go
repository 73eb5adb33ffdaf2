package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramidt/vibe-card-empire/internal/game"
)

const validPresetYAML = `name: brutal
starting_cash: 150000
starting_reputation: 2000
high_margin_bp: 2500
medium_margin_bp: 1200
expiration_min_days: 15
expiration_max_days: 40
deadline_min_days: 1
deadline_max_days: 4
base_arrival_bp: 3500
reputation_arrival_bp: 4500
max_orders_per_day: 2
initial_orders: 1
`

func TestLoad_Valid(t *testing.T) {
	p, err := Load("brutal.yaml", []byte(validPresetYAML))
	require.NoError(t, err)

	assert.Equal(t, "brutal", p.Name)
	assert.Equal(t, game.Cents(150000), p.StartingCash)
	assert.Equal(t, 2000, p.StartingReputation)
	assert.Equal(t, 15, p.ExpirationMinDays)
	assert.Equal(t, 40, p.ExpirationMaxDays)
	assert.Equal(t, 2, p.MaxOrdersPerDay)
}

func TestLoad_MissingField(t *testing.T) {
	yaml := `name: broken
starting_cash: 100000
`
	_, err := Load("broken.yaml", []byte(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating preset")
}

func TestLoad_RejectsFloatCash(t *testing.T) {
	badYAML := `name: floaty
starting_cash: 1500.50
starting_reputation: 2000
high_margin_bp: 2500
medium_margin_bp: 1200
expiration_min_days: 15
expiration_max_days: 40
deadline_min_days: 1
deadline_max_days: 4
base_arrival_bp: 3500
reputation_arrival_bp: 4500
max_orders_per_day: 2
initial_orders: 1
`
	_, err := Load("floaty.yaml", []byte(badYAML))
	assert.Error(t, err, "fractional cash violates the int constraint")
}

func TestLoad_RejectsInvertedRange(t *testing.T) {
	yaml := `name: inverted
starting_cash: 150000
starting_reputation: 2000
high_margin_bp: 2500
medium_margin_bp: 1200
expiration_min_days: 40
expiration_max_days: 15
deadline_min_days: 1
deadline_max_days: 4
base_arrival_bp: 3500
reputation_arrival_bp: 4500
max_orders_per_day: 2
initial_orders: 1
`
	_, err := Load("inverted.yaml", []byte(yaml))
	assert.Error(t, err, "max expiration below min is rejected")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	_, err := Load("garbage.yaml", []byte("::: not yaml {{{"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validPresetYAML), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "brutal", p.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
