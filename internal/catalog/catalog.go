package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/tunegraph/internal/core/model"
	"github.com/agenthands/tunegraph/internal/driver"
)

var ErrNotFound = errors.New("not found")

// Catalog stores tracks and playlists in the graph. Writes are rendered as
// literal fragments; reads rebuild entities from the returned nodes.
type Catalog struct {
	Driver driver.GraphDriver
}

func NewCatalog(d driver.GraphDriver) *Catalog {
	return &Catalog{Driver: d}
}

func (c *Catalog) BuildIndices(ctx context.Context) error {
	return c.Driver.BuildIndices(ctx)
}

// Save merges the entity's node on its schema key and overwrites the
// node's properties with the entity's literal fragment.
func (c *Catalog) Save(ctx context.Context, e *model.Entity) error {
	keyLit, err := e.FieldLiteral(e.Schema.Key)
	if err != nil {
		return err
	}
	fragment, err := e.ToLiteralFragment()
	if err != nil {
		return err
	}

	query := driver.MergeNodeQuery(e.Label(), e.Schema.Key, keyLit, fragment)
	if _, err := c.Driver.ExecuteQuery(ctx, query, nil); err != nil {
		return fmt.Errorf("failed to save %s %v: %w", e.Label(), e.Key(), err)
	}
	return nil
}

func (c *Catalog) SaveTrack(ctx context.Context, track *model.Entity) error {
	if track.Schema != model.TrackSchema {
		return fmt.Errorf("expected Track entity, got %s", track.Label())
	}
	return c.Save(ctx, track)
}

func (c *Catalog) SavePlaylist(ctx context.Context, playlist *model.Entity) error {
	if playlist.Schema != model.PlaylistSchema {
		return fmt.Errorf("expected Playlist entity, got %s", playlist.Label())
	}
	return c.Save(ctx, playlist)
}

// LinkTrack adds a CONTAINS edge at position pos. Both nodes must exist.
func (c *Catalog) LinkTrack(ctx context.Context, pid int64, trackURI string, pos int64) error {
	params := map[string]any{
		"pid":       pid,
		"track_uri": trackURI,
		"pos":       pos,
	}

	res, err := c.Driver.ExecuteQuery(ctx, driver.LinkTrackQuery, params)
	if err != nil {
		return fmt.Errorf("failed to link track %s to playlist %d: %w", trackURI, pid, err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("link track %s to playlist %d: %w", trackURI, pid, ErrNotFound)
	}
	return nil
}

func (c *Catalog) GetTrack(ctx context.Context, uri string) (*model.Entity, error) {
	return c.getOne(ctx, model.TrackSchema, driver.GetTrackQuery, map[string]any{"track_uri": uri})
}

func (c *Catalog) GetPlaylist(ctx context.Context, pid int64) (*model.Entity, error) {
	return c.getOne(ctx, model.PlaylistSchema, driver.GetPlaylistQuery, map[string]any{"pid": pid})
}

// PlaylistTracks returns the playlist's tracks ordered by position.
func (c *Catalog) PlaylistTracks(ctx context.Context, pid int64) ([]*model.Entity, error) {
	res, err := c.Driver.ExecuteQuery(ctx, driver.GetPlaylistTracksQuery, map[string]any{"pid": pid})
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks of playlist %d: %w", pid, err)
	}

	tracks := make([]*model.Entity, 0, len(res.Records))
	for _, rec := range res.Records {
		track, err := entityFromRecord(model.TrackSchema, rec)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func (c *Catalog) CountNodes(ctx context.Context, schema *model.Schema) (int64, error) {
	res, err := c.Driver.ExecuteQuery(ctx, driver.CountNodesQuery(schema.Label), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s nodes: %w", schema.Label, err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}

	v, _ := res.Records[0].Get("count")
	count, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count value %T", v)
	}
	return count, nil
}

func (c *Catalog) DeletePlaylist(ctx context.Context, pid int64) error {
	if _, err := c.Driver.ExecuteQuery(ctx, driver.DeletePlaylistQuery, map[string]any{"pid": pid}); err != nil {
		return fmt.Errorf("failed to delete playlist %d: %w", pid, err)
	}
	return nil
}

func (c *Catalog) getOne(ctx context.Context, schema *model.Schema, query string, params map[string]any) (*model.Entity, error) {
	res, err := c.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", schema.Label, err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%s %v: %w", schema.Label, params, ErrNotFound)
	}
	return entityFromRecord(schema, res.Records[0])
}

func entityFromRecord(schema *model.Schema, rec *neo4j.Record) (*model.Entity, error) {
	v, ok := rec.Get("n")
	if !ok {
		return nil, fmt.Errorf("record has no node column")
	}
	node, ok := v.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("expected node, got %T", v)
	}
	return model.FromQueryRecord(schema, node)
}
