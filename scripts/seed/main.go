// Command seed loads demo rooms and trainings into a running API instance.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type fixtures struct {
	Rooms     []json.RawMessage `json:"rooms"`
	Trainings []json.RawMessage `json:"trainings"`
}

func main() {
	var (
		base         string
		fixturesPath string
		timeout      time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&fixturesPath, "fixtures", filepath.Join("scripts", "seed", "fixtures.json"), "Path to JSON fixtures file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	data, err := os.ReadFile(fixturesPath)
	if err != nil {
		log.Fatalf("failed to read fixtures: %v", err)
	}
	var fx fixtures
	if err := json.Unmarshal(data, &fx); err != nil {
		log.Fatalf("failed to parse fixtures: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	failures := 0
	failures += post(client, base, "/salles", fx.Rooms)
	failures += post(client, base, "/formations", fx.Trainings)

	fmt.Printf("Seeded %d rooms, %d trainings, %d failures\n", len(fx.Rooms), len(fx.Trainings), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func post(client *http.Client, base, path string, payloads []json.RawMessage) int {
	url := strings.TrimRight(base, "/") + path
	failures := 0
	for _, payload := range payloads {
		resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Printf("POST %s failed: %v", path, err)
			failures++
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			log.Printf("POST %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
			failures++
		}
	}
	return failures
}
