package model

import "github.com/neo4j/neo4j-go-driver/v5/neo4j"

// PropertyRecord is the read accessor of a graph query result row.
// neo4j.Node and neo4j.Relationship satisfy it.
type PropertyRecord interface {
	GetProperties() map[string]any
}

var (
	_ PropertyRecord = neo4j.Node{}
	_ PropertyRecord = neo4j.Relationship{}
	_ PropertyRecord = Properties{}
)

// Properties adapts a plain map to PropertyRecord.
type Properties map[string]any

func (p Properties) GetProperties() map[string]any {
	return p
}
