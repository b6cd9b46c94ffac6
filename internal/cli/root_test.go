package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tunegraph/internal/config"
	"github.com/agenthands/tunegraph/internal/driver"
	"github.com/agenthands/tunegraph/internal/driver/drivertest"
)

func run(t *testing.T, open DriverFactory, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(open, &out)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mockFactory(d *drivertest.MockDriver) DriverFactory {
	return func(ctx context.Context, cfg config.MemgraphConfig) (driver.GraphDriver, error) {
		return d, nil
	}
}

func TestLiteralCmd(t *testing.T) {
	out, err := run(t, nil, "literal", `["a", 1, true, null, "False"]`)
	require.NoError(t, err)
	assert.Equal(t, "['a', 1, true, null, False]\n", out)

	_, err = run(t, nil, "literal", `{`)
	assert.Error(t, err)
}

func TestLoadCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"info": {}, "playlists": [
		{"name": "P", "collaborative": "false", "pid": 1, "modified_at": 1, "num_albums": 1,
		 "num_tracks": 1, "num_followers": 1, "num_edits": 1, "duration_ms": 5, "num_artists": 1,
		 "tracks": [{"pos": 0, "track_uri": "t1", "artist_name": "A", "artist_uri": "a",
		   "track_name": "T", "album_uri": "al", "duration_ms": 5, "album_name": "AL"}]}
	]}`), 0o644))

	mockDriver := &drivertest.MockDriver{
		Respond: func(query string, params map[string]any) (neo4j.EagerResult, error) {
			if query == driver.LinkTrackQuery {
				return drivertest.ValueResult("pos", params["pos"]), nil
			}
			return neo4j.EagerResult{}, nil
		},
	}

	out, err := run(t, mockFactory(mockDriver), "load", "--workers", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "playlists=1 tracks=1 invalid=0 duration_ms=5\n", out)
	assert.True(t, mockDriver.IndicesBuilt)
	assert.Len(t, mockDriver.CallsContaining("MERGE (n:Track {track_uri: 't1'})"), 1)
}

func TestLoadCmd_Raw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"playlists": [
		{"name": "P", "collaborative": "false", "pid": 1, "modified_at": 1, "num_albums": 0,
		 "num_tracks": 0, "num_followers": 0, "num_edits": 0, "duration_ms": 0, "num_artists": 0}
	]}`), 0o644))

	mockDriver := &drivertest.MockDriver{}
	_, err := run(t, mockFactory(mockDriver), "load", "--raw", path)
	require.NoError(t, err)

	merges := mockDriver.CallsContaining("MERGE (n:Playlist")
	require.Len(t, merges, 1)
	assert.Contains(t, merges[0].Query, "SET n += {name: P, collaborative: false")
}

func TestLoadCmd_OpenError(t *testing.T) {
	failing := func(ctx context.Context, cfg config.MemgraphConfig) (driver.GraphDriver, error) {
		return nil, fmt.Errorf("connection refused")
	}
	_, err := run(t, failing, "load", "x.json")
	assert.ErrorContains(t, err, "connection refused")
}

func TestLoadCmd_RequiresFiles(t *testing.T) {
	_, err := run(t, mockFactory(&drivertest.MockDriver{}), "load")
	assert.Error(t, err)
}

func TestIndicesCmd(t *testing.T) {
	mockDriver := &drivertest.MockDriver{}
	_, err := run(t, mockFactory(mockDriver), "indices")
	require.NoError(t, err)
	assert.True(t, mockDriver.IndicesBuilt)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[memgraph]\nuri = \"bolt://cfg:7687\"\n"), 0o644))

	var seen string
	open := func(ctx context.Context, cfg config.MemgraphConfig) (driver.GraphDriver, error) {
		seen = cfg.URI
		return &drivertest.MockDriver{}, nil
	}

	t.Setenv("MEMGRAPH_URI", "")
	_, err := run(t, open, "--config", path, "indices")
	require.NoError(t, err)
	assert.Equal(t, "bolt://cfg:7687", seen)
}
