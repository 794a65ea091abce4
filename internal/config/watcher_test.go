// Copyright 2025 Tom Barlow
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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/ec2actions/internal/log"
)

func TestStore_Reload(t *testing.T) {
	path := writeConfig(t, "defaults:\n  version: \"2014-01-01\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	store := NewStore(cfg, path)
	assert.Equal(t, "2014-01-01", store.Defaults()["version"])

	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  version: \"2016-11-15\"\n"), 0600))
	require.NoError(t, store.Reload())
	assert.Equal(t, "2016-11-15", store.Defaults()["version"])

	require.NoError(t, os.WriteFile(path, []byte("log: ["), 0600))
	require.Error(t, store.Reload())
	assert.Equal(t, "2016-11-15", store.Defaults()["version"], "failed reload keeps previous configuration")
}

func TestNewWatcher_Validation(t *testing.T) {
	_, err := NewWatcher(WatcherConfig{})
	assert.Error(t, err)

	_, err = NewWatcher(WatcherConfig{Store: NewStore(nil, "")})
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "defaults:\n  region: us-east-1\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	store := NewStore(cfg, path)

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(WatcherConfig{
		Store:         store,
		Logger:        log.Discard(),
		DebounceDelay: 10 * time.Millisecond,
		OnReload:      func(c *Config) { reloaded <- c },
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  region: eu-west-1\n"), 0600))

	assert.Eventually(t, func() bool {
		return store.Current().Defaults.Region == "eu-west-1"
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case c := <-reloaded:
		assert.Equal(t, "eu-west-1", c.Defaults.Region)
	case <-time.After(time.Second):
		t.Fatal("OnReload was not called")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := writeConfig(t, "defaults:\n  region: us-east-1\n")
	store := NewStore(nil, path)

	w, err := NewWatcher(WatcherConfig{
		Store:         store,
		Logger:        log.Discard(),
		DebounceDelay: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	defer w.Close()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("defaults:\n  region: ap-south-1\n"), 0600))

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, store.Current().Defaults.Region, "store was seeded with defaults and must not reload")
}
