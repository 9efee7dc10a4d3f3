package server

import (
	"encoding/csv"
	"io"
	"strconv"

	"gridboard/internal/scoring"
)

var csvHeader = []string{
	"rank", "player_name", "position", "fantasy_points",
	"pass_td", "pass_int", "pass_yards",
	"rush_td", "rush_yards",
	"rec_td", "rec_yards", "reception",
	"fumble_lost",
}

func writeLeaderboardCSV(w io.Writer, entries []scoring.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Rank),
			e.PlayerName,
			e.Position,
			strconv.FormatFloat(e.FantasyPoints, 'f', 2, 64),
			strconv.Itoa(e.PassTD),
			strconv.Itoa(e.PassInt),
			strconv.FormatFloat(e.PassYards, 'f', -1, 64),
			strconv.Itoa(e.RushTD),
			strconv.FormatFloat(e.RushYards, 'f', -1, 64),
			strconv.Itoa(e.RecTD),
			strconv.FormatFloat(e.RecYards, 'f', -1, 64),
			strconv.Itoa(e.Receptions),
			strconv.Itoa(e.FumbleLost),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
