package driver

import (
	"fmt"

	"github.com/agenthands/tunegraph/internal/core/model"
)

const (
	GetTrackQuery = `
		MATCH (n:Track {track_uri: $track_uri})
		RETURN n
		LIMIT 1
	`

	GetPlaylistQuery = `
		MATCH (n:Playlist {pid: $pid})
		RETURN n
		LIMIT 1
	`

	GetPlaylistTracksQuery = `
		MATCH (:Playlist {pid: $pid})-[r:CONTAINS]->(n:Track)
		RETURN n, r.pos AS pos
		ORDER BY r.pos
	`

	LinkTrackQuery = `
		MATCH (p:Playlist {pid: $pid})
		MATCH (t:Track {track_uri: $track_uri})
		MERGE (p)-[r:CONTAINS {pos: $pos}]->(t)
		RETURN r.pos AS pos
	`

	DeletePlaylistQuery = `
		MATCH (n:Playlist {pid: $pid})
		DETACH DELETE n
	`
)

// MergeNodeQuery upserts a node on its key and overwrites its properties
// with a literal fragment, e.g.
//
//	MERGE (n:Track {track_uri: 't1'})
//	SET n += {artist_name: 'Bob', ...}
//	RETURN n
func MergeNodeQuery(label, key, keyLiteral, fragment string) string {
	return fmt.Sprintf("MERGE (n:%s {%s: %s})\nSET n += {%s}\nRETURN n", label, key, keyLiteral, fragment)
}

// CreateNodeQuery creates a node from a literal fragment without matching
// an existing one.
func CreateNodeQuery(label, fragment string) string {
	return fmt.Sprintf("CREATE (n:%s {%s})\nRETURN n", label, fragment)
}

func CountNodesQuery(label string) string {
	return fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", label)
}

// IndexQueries returns one Memgraph label-property index per schema key.
func IndexQueries(schemas []*model.Schema) []string {
	queries := make([]string, 0, len(schemas))
	for _, s := range schemas {
		queries = append(queries, fmt.Sprintf("CREATE INDEX ON :%s(%s);", s.Label, s.Key))
	}
	return queries
}
