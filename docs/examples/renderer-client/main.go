// booldo Renderer Client Example
//
// This is a minimal example of how a rendering frontend consults the
// resolution engine before serving a page: ask /internal/resolve for a
// verdict, then redirect, serve 410, or render with the decoded filters.
//
// Usage:
//
//	export BOOLDO_ENGINE_URL="http://localhost:8080"
//	go run main.go
//
// Then browse http://localhost:9000/gh/free-bet

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Verdict is the engine's answer for one path.
type Verdict struct {
	Action   string   `json:"action"`
	Location string   `json:"location"`
	Status   int      `json:"status"`
	Variant  string   `json:"variant"`
	Country  string   `json:"country"`
	Filters  *Filters `json:"filters"`
}

type Filters struct {
	BonusTypes []string `json:"bonusTypes"`
	Bookmakers []string `json:"bookmakers"`
	Advanced   []string `json:"advanced"`
}

func main() {
	engineURL := os.Getenv("BOOLDO_ENGINE_URL")
	if engineURL == "" {
		engineURL = "http://localhost:8080"
	}
	engineURL = strings.TrimSuffix(engineURL, "/")

	client := &http.Client{Timeout: 5 * time.Second}

	http.HandleFunc("/", pageHandler(client, engineURL))

	log.Println("Starting renderer on :9000")
	log.Printf("Engine: %s", engineURL)
	log.Fatal(http.ListenAndServe(":9000", nil))
}

func pageHandler(client *http.Client, engineURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verdict, err := resolve(client, engineURL, r.URL.Path)
		if err != nil {
			// Engine unreachable: render unfiltered rather than fail.
			log.Printf("resolve error, rendering anyway: %v", err)
			renderListing(w, "", nil)
			return
		}

		switch verdict.Action {
		case "redirect":
			http.Redirect(w, r, verdict.Location, verdict.Status)
		case "gone":
			w.WriteHeader(http.StatusGone)
			fmt.Fprintf(w, "This page is gone (%s).\n", verdict.Variant)
		default:
			renderListing(w, verdict.Country, verdict.Filters)
		}
	}
}

func resolve(client *http.Client, engineURL, path string) (*Verdict, error) {
	resp, err := client.Get(engineURL + "/internal/resolve?path=" + url.QueryEscape(path))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	return &verdict, nil
}

func renderListing(w http.ResponseWriter, country string, filters *Filters) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if country == "" {
		fmt.Fprintln(w, "All offers")
		return
	}
	fmt.Fprintf(w, "Offers for %s\n", country)
	if filters == nil {
		fmt.Fprintln(w, "No filters")
		return
	}
	if len(filters.BonusTypes) > 0 {
		fmt.Fprintf(w, "Bonus types: %s\n", strings.Join(filters.BonusTypes, ", "))
	}
	if len(filters.Bookmakers) > 0 {
		fmt.Fprintf(w, "Bookmakers: %s\n", strings.Join(filters.Bookmakers, ", "))
	}
	if len(filters.Advanced) > 0 {
		fmt.Fprintf(w, "Advanced: %s\n", strings.Join(filters.Advanced, ", "))
	}
}
