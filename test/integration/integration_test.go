//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tunegraph/internal/catalog"
	"github.com/agenthands/tunegraph/internal/core/model"
	"github.com/agenthands/tunegraph/internal/driver"
)

func connect(t *testing.T) *driver.MemgraphDriver {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	d, err := driver.NewMemgraphDriver(context.Background(), uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close(context.Background()) })
	return d
}

func TestTrackRoundTrip(t *testing.T) {
	d := connect(t)
	ctx := context.Background()
	c := catalog.NewCatalog(d)
	require.NoError(t, c.BuildIndices(ctx))

	row := map[string]any{
		"track_uri":   "spotify:track:it-1",
		"artist_name": "Bob",
		"artist_uri":  "spotify:artist:it-1",
		"track_name":  "Song",
		"album_uri":   "spotify:album:it-1",
		"duration_ms": int64(200000),
		"album_name":  "Album",
	}
	quoted, err := model.QuoteText(model.TrackSchema, row)
	require.NoError(t, err)
	track, err := model.TrackFromMapping(quoted)
	require.NoError(t, err)

	require.NoError(t, c.SaveTrack(ctx, track))
	t.Cleanup(func() {
		_, _ = d.ExecuteQuery(ctx, `MATCH (n:Track {track_uri: $uri}) DETACH DELETE n`, map[string]any{"uri": row["track_uri"]})
	})

	got, err := c.GetTrack(ctx, "spotify:track:it-1")
	require.NoError(t, err)
	// The graph stores the unquoted strings.
	assert.Equal(t, row, got.ToMap())
}

func TestPlaylistRoundTrip(t *testing.T) {
	d := connect(t)
	ctx := context.Background()
	c := catalog.NewCatalog(d)

	row := map[string]any{
		"name":          "Integration",
		"collaborative": "true",
		"pid":           int64(990001),
		"modified_at":   int64(1493424000),
		"num_albums":    int64(1),
		"num_tracks":    int64(0),
		"num_followers": int64(1),
		"num_edits":     int64(1),
		"duration_ms":   int64(0),
		"num_artists":   int64(0),
	}
	quoted, err := model.QuoteText(model.PlaylistSchema, row)
	require.NoError(t, err)
	pl, err := model.PlaylistFromMapping(quoted)
	require.NoError(t, err)

	require.NoError(t, c.SavePlaylist(ctx, pl))
	t.Cleanup(func() { _ = c.DeletePlaylist(ctx, 990001) })

	got, err := c.GetPlaylist(ctx, 990001)
	require.NoError(t, err)

	// "true" was written unquoted, so it comes back as a boolean.
	collab, _ := got.Get("collaborative")
	assert.Equal(t, true, collab)
	name, _ := got.Get("name")
	assert.Equal(t, "Integration", name)
}
