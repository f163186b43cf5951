// Copyright 2025 Menagerie Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ".arena", cfg.DatabasePath)
	assert.Equal(t, "168h", cfg.EpochDuration)
	assert.Equal(t, uint(12798), cfg.MetricsPort)
	assert.Equal(t, uint(18), cfg.TokenDecimals)
}

func TestLoadConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "arena.yaml")
	content := []byte(
		"databasePath: /var/lib/arena\n" +
			"epochDuration: 24h\n" +
			"firstStageDuration: 8h\n" +
			"listingThreshold: \"1000000000000000000000\"\n",
	)
	require.NoError(t, os.WriteFile(configPath, content, 0o644))
	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/arena", cfg.DatabasePath)
	assert.Equal(t, "24h", cfg.EpochDuration)
	assert.Equal(t, "8h", cfg.FirstStageDuration)
	assert.Equal(t, "1000000000000000000000", cfg.ListingThreshold)
	// Untouched values keep their defaults
	assert.Equal(t, uint(12798), cfg.MetricsPort)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ARENA_VAULT_ID", "vault-env")
	t.Setenv("ARENA_METRICS_PORT", "9999")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "vault-env", cfg.VaultId)
	assert.Equal(t, uint(9999), cfg.MetricsPort)
}

func TestConfigContext(t *testing.T) {
	cfg := &Config{DatabasePath: "/tmp/x"}
	ctx := WithContext(context.Background(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
