package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gridboard/internal/cache"
	"gridboard/internal/db"
	"gridboard/internal/live"
	"gridboard/internal/provider"
	"gridboard/internal/scoring"
	"gridboard/internal/service"
	"gridboard/internal/stats"

	"github.com/go-chi/chi/v5"
)

const defaultTopN = 25

// Server contains dependencies for HTTP handlers.
type Server struct {
	Service       *service.Service
	Seasons       provider.PlayProvider
	Store         *db.DB              // nil if no database configured
	Boards        *cache.Leaderboards // nil if no cache configured
	Hub           *live.Hub
	CurrentSeason int
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// queryInt parses an integer query parameter, returning fallback when
// absent or malformed.
func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitPositions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	positions := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			positions = append(positions, p)
		}
	}
	return positions
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "gridboard",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	req := service.Request{
		Season:    queryInt(r, "season", s.CurrentSeason),
		Week:      queryInt(r, "week", 0),
		TopN:      queryInt(r, "top_n", defaultTopN),
		Positions: splitPositions(r.URL.Query().Get("position")),
	}

	res, err := s.Service.Leaderboard(r.Context(), req)
	if err != nil {
		s.respondComputeError(w, err)
		return
	}
	if res.AllPlayers == 0 {
		respondError(w, http.StatusNotFound, "no data available for selected parameters")
		return
	}

	weekLabel := "all weeks"
	if req.Week > 0 {
		weekLabel = fmt.Sprintf("week %d", req.Week)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"metadata": map[string]any{
			"season":        res.Season,
			"week":          res.Week,
			"total_players": res.TotalPlayers,
			"top_score":     res.TopScore,
			"average_score": res.AverageScore,
			"timestamp":     res.GeneratedAt.Format(time.RFC3339),
			"data_source":   fmt.Sprintf("season %d (%s)", res.Season, weekLabel),
		},
		"leaderboard":            res.Entries,
		"full_leaderboard_count": res.TotalPlayers,
	})
}

func (s *Server) respondComputeError(w http.ResponseWriter, err error) {
	var mismatch *stats.SeasonMismatchError
	if errors.As(err, &mismatch) {
		respondError(w, http.StatusInternalServerError, mismatch.Error())
		return
	}
	log.Printf("[Server] leaderboard error: %v\n", err)
	respondError(w, http.StatusBadGateway, "failed to compute leaderboard")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid season")
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid week")
		return
	}

	entries, err := s.Service.PlayerStats(r.Context(), season, week)
	if err != nil {
		s.respondComputeError(w, err)
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusNotFound, "no data available")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   entries,
	})
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.Seasons.Seasons(r.Context())
	if err != nil {
		log.Printf("[Server] seasons error: %v\n", err)
		respondError(w, http.StatusBadGateway, "failed to list seasons")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"seasons": seasons,
		"current": s.CurrentSeason,
	})
}

func (s *Server) handleScoring(w http.ResponseWriter, r *http.Request) {
	rules := s.Service.Rules
	if rules == nil {
		rules = scoring.DefaultRuleset()
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"scoring_system": "PPR (Points Per Reception)",
		"rules":          rules,
	})
}

// ingestRequest is the POST /api/ingest body: play rows for one season.
type ingestRequest struct {
	Season int          `json:"season"`
	Plays  []stats.Play `json:"plays"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		respondError(w, http.StatusServiceUnavailable, "ingest requires a database connection")
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Season == 0 {
		respondError(w, http.StatusBadRequest, "season is required")
		return
	}
	if len(req.Plays) == 0 {
		respondError(w, http.StatusBadRequest, "plays must not be empty")
		return
	}
	if err := stats.ValidateSeason(req.Plays, req.Season); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.Store.IngestPlays(r.Context(), req.Season, req.Plays)
	if err != nil {
		log.Printf("[Server] ingest error: %v\n", err)
		respondError(w, http.StatusInternalServerError, "failed to ingest plays")
		return
	}

	// Stored plays supersede any memoized boards for the touched weeks.
	if s.Boards != nil {
		weeks := map[int]bool{0: true}
		for _, p := range req.Plays {
			weeks[p.Week] = true
		}
		for week := range weeks {
			if err := s.Boards.Invalidate(r.Context(), req.Season, week); err != nil {
				log.Printf("[Server] cache invalidation: %v\n", err)
			}
		}
	}

	respondJSON(w, http.StatusCreated, res)
}

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	season := queryInt(r, "season", s.CurrentSeason)
	week := queryInt(r, "week", 0)

	entries, err := s.Service.PlayerStats(r.Context(), season, week)
	if err != nil {
		s.respondComputeError(w, err)
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusNotFound, "no data available")
		return
	}

	weekLabel := "all"
	if week > 0 {
		weekLabel = strconv.Itoa(week)
	}
	filename := fmt.Sprintf("fantasy_leaderboard_%d_w%s.csv", season, weekLabel)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := writeLeaderboardCSV(w, entries); err != nil {
		log.Printf("[Server] writing csv: %v\n", err)
	}
}
