package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
)

var baseURL = "http://localhost:8080"

func main() {
	if u := os.Getenv("TUNEGRAPH_URL"); u != "" {
		baseURL = u
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	pid := time.Now().Unix()

	fmt.Println("1. Rendering a literal...")
	if _, ok := sendRequest("POST", "/literal", map[string]any{"tags": []string{"a", "b"}, "count": 3}); !ok {
		fmt.Println("FAILED: Literal")
		os.Exit(1)
	}
	fmt.Println("PASSED: Literal")

	fmt.Println("2. Adding a playlist...")
	playlist := map[string]any{
		"name": "Smoke", "collaborative": "false", "pid": pid, "modified_at": pid,
		"num_albums": 1, "num_tracks": 1, "num_followers": 0, "num_edits": 1,
		"duration_ms": 200000, "num_artists": 1,
		"tracks": []map[string]any{{
			"pos": 0, "track_uri": fmt.Sprintf("spotify:track:smoke-%d", pid),
			"artist_name": "Bob", "artist_uri": "spotify:artist:smoke", "track_name": "Song",
			"album_uri": "spotify:album:smoke", "duration_ms": 200000, "album_name": "Album",
		}},
	}
	if _, ok := sendRequest("POST", "/playlists", playlist); !ok {
		fmt.Println("FAILED: Add playlist")
		os.Exit(1)
	}
	fmt.Println("PASSED: Add playlist")

	fmt.Println("3. Reading it back...")
	body, ok := sendRequest("GET", fmt.Sprintf("/playlists/%d/tracks", pid), nil)
	if !ok {
		fmt.Println("FAILED: Playlist tracks")
		os.Exit(1)
	}
	var resp struct {
		Tracks []map[string]any `json:"tracks"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Tracks) != 1 {
		fmt.Printf("FAILED: Playlist tracks, expected 1 track: %s\n", string(body))
		os.Exit(1)
	}
	fmt.Println("PASSED: Playlist tracks")
}

func sendRequest(method, endpoint string, payload any) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	return respBody, true
}
