package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver runs Cypher against the catalog graph.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	// BuildIndices creates the lookup indices for every catalog label.
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
