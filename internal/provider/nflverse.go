package provider

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"gridboard/internal/stats"
)

const (
	// DefaultBaseURL hosts one play-by-play CSV per season.
	DefaultBaseURL = "https://github.com/nflverse/nflverse-data/releases/download/pbp"

	// FirstSeason is the earliest season nflverse publishes.
	FirstSeason = 1999
)

// NFLVerseClient fetches per-season play-by-play CSV files over HTTP.
// Files may be served gzipped; the client sniffs and decompresses.
type NFLVerseClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewNFLVerseClient creates a client against baseURL, or the public
// nflverse release feed when baseURL is empty.
func NewNFLVerseClient(baseURL string) *NFLVerseClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &NFLVerseClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "gridboard/1.0",
	}
}

// Plays downloads and parses the season's play-by-play file. A week > 0
// filters client-side. A 404 means the season simply has no data yet and
// yields an empty slice, not an error.
func (c *NFLVerseClient) Plays(ctx context.Context, season, week int) ([]stats.Play, error) {
	url := fmt.Sprintf("%s/play_by_play_%d.csv", c.baseURL, season)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching plays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Printf("[Provider] no play-by-play file for season %d\n", season)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nflverse: status %d for season %d", resp.StatusCode, season)
	}

	plays, err := ParsePlays(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing season %d plays: %w", season, err)
	}

	if week > 0 {
		filtered := plays[:0]
		for _, p := range plays {
			if p.Week == week {
				filtered = append(filtered, p)
			}
		}
		plays = filtered
	}
	log.Printf("[Provider] season %d week %d: %d plays\n", season, week, len(plays))
	return plays, nil
}

// Seasons returns every season nflverse might cover, oldest first.
func (c *NFLVerseClient) Seasons(ctx context.Context) ([]int, error) {
	current := time.Now().Year()
	seasons := make([]int, 0, current-FirstSeason+1)
	for y := FirstSeason; y <= current; y++ {
		seasons = append(seasons, y)
	}
	return seasons, nil
}

// ParsePlays reads play records from CSV, decompressing gzip content if
// present. Columns the feed doesn't carry degrade to zero values; a feed
// with no recognizable columns at all parses to plays that aggregate to
// nothing rather than failing.
func ParsePlays(r io.Reader) ([]stats.Play, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		return parseCSV(gz)
	}
	return parseCSV(br)
}

// columns maps the header names we care about to field indices.
type columns struct {
	idx map[string]int
}

func (c columns) str(record []string, name string) string {
	i, ok := c.idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	v := record[i]
	if v == "NA" {
		return ""
	}
	return v
}

func (c columns) num(record []string, name string) float64 {
	v := c.str(record, name)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseCSV(r io.Reader) ([]stats.Play, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := columns{idx: make(map[string]int, len(header))}
	for i, name := range header {
		cols.idx[name] = i
	}

	var plays []stats.Play
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		plays = append(plays, stats.Play{
			Season:         int(cols.num(record, "season")),
			Week:           int(cols.num(record, "week")),
			PlayType:       cols.str(record, "play_type"),
			Passer:         cols.str(record, "passer_player_name"),
			Rusher:         cols.str(record, "rusher_player_name"),
			Receiver:       cols.str(record, "receiver_player_name"),
			PassTouchdown:  int(cols.num(record, "pass_touchdown")),
			Interception:   int(cols.num(record, "interception")),
			PassingYards:   cols.num(record, "passing_yards"),
			RushTouchdown:  int(cols.num(record, "rush_touchdown")),
			RushingYards:   cols.num(record, "rushing_yards"),
			Touchdown:      int(cols.num(record, "touchdown")),
			CompletePass:   int(cols.num(record, "complete_pass")),
			ReceivingYards: cols.num(record, "receiving_yards"),
			FumbleLost:     int(cols.num(record, "fumble_lost")),
		})
	}
	return plays, nil
}
