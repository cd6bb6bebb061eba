package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 80, cfg.Threshold)
	assert.Equal(t, "Diamond Trust Bank", cfg.Accounts.Bank)
	assert.Contains(t, cfg.Vendors, "Brookside Dairy Ltd")
	assert.Contains(t, cfg.Staff, "Rehema Jumwa Muli")
	assert.Contains(t, cfg.Types.Excluded, "MPESA FUNDS TRANSFER")
	assert.NotEmpty(t, cfg.Overrides)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtb2iif.yaml")
	cfg := Default()
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtb2iif.yaml")
	data := "threshold: 500\naccounts:\n  bank: Diamond Trust Bank\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "threshold")
}

func TestValidate_RequiresBankAccount(t *testing.T) {
	cfg := Default()
	cfg.Accounts.Bank = ""
	assert.Error(t, cfg.Validate())
}
