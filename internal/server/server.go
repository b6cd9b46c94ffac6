package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/tunegraph/internal/catalog"
	"github.com/agenthands/tunegraph/internal/core/model"
	"github.com/agenthands/tunegraph/internal/cypher"
	"github.com/agenthands/tunegraph/internal/loader"
)

type Server struct {
	Catalog *catalog.Catalog
	Loader  *loader.Loader
}

func NewServer(c *catalog.Catalog, l *loader.Loader) *Server {
	return &Server{Catalog: c, Loader: l}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.POST("/literal", s.Literal)
	r.POST("/playlists", s.AddPlaylist)
	r.GET("/playlists/:pid", s.GetPlaylist)
	r.GET("/playlists/:pid/tracks", s.GetPlaylistTracks)
	r.GET("/tracks/:uri", s.GetTrack)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// Literal renders an arbitrary JSON body as openCypher literal text.
func (s *Server) Literal(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	v, err := loader.DecodeValue(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	lit, err := cypher.Literal(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"literal": lit})
}

// AddPlaylist saves one playlist row, with its tracks, from the body.
func (s *Server) AddPlaylist(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	v, err := loader.DecodeValue(body)
	row, ok := v.(map[string]any)
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a JSON object"})
		return
	}

	stats, err := s.Loader.LoadPlaylist(c.Request.Context(), row)
	if err != nil {
		log.Error("Failed to add playlist", "request_id", c.GetString("request_id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save playlist"})
		return
	}
	if stats.Playlists == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playlist", "stats": stats})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "stats": stats})
}

func (s *Server) GetPlaylist(c *gin.Context) {
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pid"})
		return
	}

	pl, err := s.Catalog.GetPlaylist(c.Request.Context(), pid)
	if err != nil {
		s.fail(c, "Failed to get playlist", err)
		return
	}

	c.JSON(http.StatusOK, entityJSON(pl))
}

func (s *Server) GetPlaylistTracks(c *gin.Context) {
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pid"})
		return
	}

	tracks, err := s.Catalog.PlaylistTracks(c.Request.Context(), pid)
	if err != nil {
		s.fail(c, "Failed to list tracks", err)
		return
	}

	out := make([]gin.H, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, entityJSON(t))
	}
	c.JSON(http.StatusOK, gin.H{"tracks": out})
}

func (s *Server) GetTrack(c *gin.Context) {
	track, err := s.Catalog.GetTrack(c.Request.Context(), c.Param("uri"))
	if err != nil {
		s.fail(c, "Failed to get track", err)
		return
	}

	c.JSON(http.StatusOK, entityJSON(track))
}

func (s *Server) fail(c *gin.Context, msg string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	log.Error(msg, "request_id", c.GetString("request_id"), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func entityJSON(e *model.Entity) gin.H {
	h := gin.H{
		"label":      e.Label(),
		"properties": e.ToMap(),
	}
	if frag, err := e.ToLiteralFragment(); err == nil {
		h["cypher"] = frag
	}
	return h
}
