package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queue-sim-service/internal/domain"
)

func TestGetFallsBackWhenUnset(t *testing.T) {
	assert.Equal(t, "8080", Get("QSIM_TEST_UNSET_PORT", "8080"))

	t.Setenv("QSIM_TEST_PORT", "9090")
	assert.Equal(t, "9090", Get("QSIM_TEST_PORT", "8080"))
}

func TestGetIntFallsBackOnBadValue(t *testing.T) {
	t.Setenv("QSIM_TEST_LIMIT", "not-a-number")
	assert.Equal(t, 60, GetInt("QSIM_TEST_LIMIT", 60))

	t.Setenv("QSIM_TEST_LIMIT", "120")
	assert.Equal(t, 120, GetInt("QSIM_TEST_LIMIT", 60))
}

func TestGetBoolFallsBackOnBadValue(t *testing.T) {
	assert.True(t, GetBool("QSIM_TEST_UNSET_FLAG", true))

	t.Setenv("QSIM_TEST_FLAG", "maybe")
	assert.True(t, GetBool("QSIM_TEST_FLAG", true))

	t.Setenv("QSIM_TEST_FLAG", "false")
	assert.False(t, GetBool("QSIM_TEST_FLAG", true))

	t.Setenv("QSIM_TEST_FLAG", "1")
	assert.True(t, GetBool("QSIM_TEST_FLAG", false))
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTablesSampleMatchesDefaults(t *testing.T) {
	path := writeTempFile(t, "tables.yaml", SampleTablesYAML)

	pair, err := LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTables(), pair)
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadTablesRejectsDefectiveTable(t *testing.T) {
	// Last bound (900) disagrees with max (1000).
	path := writeTempFile(t, "tables.yaml", `
iat:
  max: 1000
  buckets:
    - { upper_bound: 500, value: 4 }
    - { upper_bound: 900, value: 8 }
st:
  max: 100
  buckets:
    - { upper_bound: 100, value: 5 }
`)

	_, err := LoadTables(path)
	require.Error(t, err)

	var cerr *domain.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "iat", cerr.Table)
}

func TestLoadTablesRejectsMalformedYAML(t *testing.T) {
	path := writeTempFile(t, "tables.yaml", "iat: [not: closed")

	_, err := LoadTables(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoadNewsvendorSampleMatchesDefaults(t *testing.T) {
	path := writeTempFile(t, "newsvendor.yaml", SampleNewsvendorYAML)

	p, err := LoadNewsvendorProblem(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultNewsvendorProblem(), p)
}

func TestLoadNewsvendorRejectsBadProbabilities(t *testing.T) {
	path := writeTempFile(t, "newsvendor.yaml", `
days: 10
order_quantity: 70
selling_price: 0.50
cost_price: 0.33
salvage_price: 0.05
day_types:
  - { type: good, prob: 0.50 }
  - { type: poor, prob: 0.40 }
demand:
  good:
    - { demand: 40, prob: 1.0 }
  poor:
    - { demand: 40, prob: 1.0 }
`)

	_, err := LoadNewsvendorProblem(path)
	require.Error(t, err)

	var cerr *domain.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "day_types", cerr.Table)
}
