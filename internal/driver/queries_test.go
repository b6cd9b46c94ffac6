package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/tunegraph/internal/core/model"
)

func TestMergeNodeQuery(t *testing.T) {
	q := MergeNodeQuery("Track", "track_uri", "'t1'", "track_uri: 't1', duration_ms: 1")
	assert.Equal(t, "MERGE (n:Track {track_uri: 't1'})\nSET n += {track_uri: 't1', duration_ms: 1}\nRETURN n", q)
}

func TestCreateNodeQuery(t *testing.T) {
	assert.Equal(t, "CREATE (n:Playlist {pid: 1})\nRETURN n", CreateNodeQuery("Playlist", "pid: 1"))
}

func TestIndexQueries(t *testing.T) {
	got := IndexQueries([]*model.Schema{model.TrackSchema, model.PlaylistSchema})
	assert.Equal(t, []string{
		"CREATE INDEX ON :Track(track_uri);",
		"CREATE INDEX ON :Playlist(pid);",
	}, got)
}

func TestCountNodesQuery(t *testing.T) {
	assert.Equal(t, "MATCH (n:Track) RETURN count(n) AS count", CountNodesQuery("Track"))
}
