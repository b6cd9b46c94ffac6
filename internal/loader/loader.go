package loader

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/tunegraph/internal/catalog"
	"github.com/agenthands/tunegraph/internal/config"
	"github.com/agenthands/tunegraph/internal/core/model"
)

type Stats struct {
	Playlists  int64 `json:"playlists"`
	Tracks     int64 `json:"tracks"`
	Invalid    int64 `json:"invalid"`
	DurationMS int64 `json:"duration_ms"`
}

func (s *Stats) add(o Stats) {
	s.Playlists += o.Playlists
	s.Tracks += o.Tracks
	s.Invalid += o.Invalid
	s.DurationMS += o.DurationMS
}

// Loader writes playlist slices into the catalog. Rows lacking a declared
// field are skipped and counted as invalid; driver errors abort the load.
type Loader struct {
	Catalog   *catalog.Catalog
	Workers   int
	QuoteText bool
	Logger    *log.Logger
}

func New(c *catalog.Catalog, cfg config.LoaderConfig, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Loader{Catalog: c, Workers: workers, QuoteText: cfg.QuoteText, Logger: logger}
}

func (l *Loader) LoadFiles(ctx context.Context, paths []string) (Stats, error) {
	batch := uuid.New().String()
	start := time.Now()
	logger := l.Logger.With("batch", batch)

	var total Stats
	for _, path := range paths {
		s, err := l.LoadFile(ctx, path)
		total.add(s)
		if err != nil {
			return total, err
		}
		logger.Info("Loaded slice", "file", path, "playlists", s.Playlists, "tracks", s.Tracks, "invalid", s.Invalid)
	}

	logger.Infof("Loaded %d playlists, %d tracks (%s)", total.Playlists, total.Tracks, time.Since(start).Round(time.Millisecond))
	return total, nil
}

func (l *Loader) LoadFile(ctx context.Context, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open slice '%s': %w", path, err)
	}
	defer f.Close()

	s, err := ReadSlice(f)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return l.LoadSlice(ctx, s)
}

// LoadSlice saves every playlist of s, at most Workers at a time.
func (l *Loader) LoadSlice(ctx context.Context, s *Slice) (Stats, error) {
	var playlists, tracks, invalid, duration atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.Workers)

	for _, raw := range s.Playlists {
		raw := raw
		g.Go(func() error {
			st, err := l.LoadPlaylist(ctx, raw)
			playlists.Add(st.Playlists)
			tracks.Add(st.Tracks)
			invalid.Add(st.Invalid)
			duration.Add(st.DurationMS)
			return err
		})
	}

	err := g.Wait()
	return Stats{
		Playlists:  playlists.Load(),
		Tracks:     tracks.Load(),
		Invalid:    invalid.Load(),
		DurationMS: duration.Load(),
	}, err
}

// LoadPlaylist saves one playlist row and its "tracks" list, linking each
// track at its "pos" (or list index when absent). The pid is coerced to an
// integer before the node is written so that the merge key and the track
// links agree; a pid that is not an integer makes the row invalid.
func (l *Loader) LoadPlaylist(ctx context.Context, raw map[string]any) (Stats, error) {
	var st Stats

	row := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "tracks" {
			row[k] = v
		}
	}

	var pid int64
	if v, ok := row["pid"]; ok {
		id, err := playlistID(v)
		if err != nil {
			l.Logger.Warn("Skipping invalid playlist", "pid", v, "err", err)
			st.Invalid++
			return st, nil
		}
		pid = id
		row["pid"] = id
	}

	playlist, err := l.build(model.PlaylistSchema, row)
	if err != nil {
		var missing *model.MissingFieldError
		if errors.As(err, &missing) {
			l.Logger.Warn("Skipping invalid playlist", "err", err)
			st.Invalid++
			return st, nil
		}
		return st, err
	}

	if err := l.Catalog.SavePlaylist(ctx, playlist); err != nil {
		return st, err
	}
	st.Playlists++

	rows, _ := raw["tracks"].([]any)
	for i, item := range rows {
		trackRow, ok := item.(map[string]any)
		if !ok {
			l.Logger.Warn("Skipping malformed track", "pid", pid, "index", i)
			st.Invalid++
			continue
		}

		track, err := l.build(model.TrackSchema, trackRow)
		if err != nil {
			var missing *model.MissingFieldError
			if errors.As(err, &missing) {
				l.Logger.Warn("Skipping invalid track", "pid", pid, "index", i, "err", err)
				st.Invalid++
				continue
			}
			return st, err
		}

		if err := l.Catalog.SaveTrack(ctx, track); err != nil {
			return st, err
		}

		pos := int64(i)
		if p, ok := trackRow["pos"]; ok {
			if pos, err = cast.ToInt64E(p); err != nil {
				return st, fmt.Errorf("track pos %v: %w", p, err)
			}
		}
		if err := l.Catalog.LinkTrack(ctx, pid, cast.ToString(trackRow["track_uri"]), pos); err != nil {
			return st, err
		}

		st.Tracks++
		if d, err := track.GetInt("duration_ms"); err == nil {
			st.DurationMS += d
		}
	}

	l.Logger.Debug("Saved playlist", "pid", pid, "tracks", st.Tracks)
	return st, nil
}

// playlistID accepts integers, integral floats and base-10 digit strings.
func playlistID(v any) (int64, error) {
	switch id := v.(type) {
	case float64:
		if id != math.Trunc(id) {
			return 0, fmt.Errorf("pid %v is not an integer", id)
		}
		return int64(id), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("pid %q is not an integer", id)
		}
		return n, nil
	case bool, nil:
		return 0, fmt.Errorf("pid %v is not an integer", id)
	}
	return cast.ToInt64E(v)
}

func (l *Loader) build(schema *model.Schema, row map[string]any) (*model.Entity, error) {
	if l.QuoteText {
		quoted, err := model.QuoteText(schema, row)
		if err != nil {
			return nil, err
		}
		row = quoted
	}
	return model.FromMapping(schema, row)
}
