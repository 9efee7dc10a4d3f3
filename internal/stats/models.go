package stats

// Positions assigned by the aggregator. A player is exactly one of these.
const (
	PositionQB   = "QB"
	PositionRB   = "RB"
	PositionWRTE = "WR/TE"
)

// Play is one offensive snap from a play-by-play feed. At most one of
// Passer/Rusher is populated per play; Receiver may be empty even when a
// passer is present (incompletions, throwaways). An empty name means the
// role column was missing or null upstream, and a zero Season/Week means
// the column was absent.
type Play struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	PlayType string `json:"play_type"`

	Passer   string `json:"passer_player_name"`
	Rusher   string `json:"rusher_player_name"`
	Receiver string `json:"receiver_player_name"`

	PassTouchdown int     `json:"pass_touchdown"`
	Interception  int     `json:"interception"`
	PassingYards  float64 `json:"passing_yards"`

	RushTouchdown int     `json:"rush_touchdown"`
	RushingYards  float64 `json:"rushing_yards"`

	Touchdown      int     `json:"touchdown"`
	CompletePass   int     `json:"complete_pass"`
	ReceivingYards float64 `json:"receiving_yards"`

	FumbleLost int `json:"fumble_lost"`
}

// PlayerStats is the aggregated stat line for one player, keyed by display
// name. Every numeric field defaults to zero; Position is always one of
// the Position constants once the aggregator has seen the player.
type PlayerStats struct {
	PlayerName string  `json:"player_name"`
	Position   string  `json:"position"`
	PassTD     int     `json:"pass_td"`
	PassInt    int     `json:"pass_int"`
	PassYards  float64 `json:"pass_yards"`
	RushTD     int     `json:"rush_td"`
	RushYards  float64 `json:"rush_yards"`
	RecTD      int     `json:"rec_td"`
	RecYards   float64 `json:"rec_yards"`
	Receptions int     `json:"reception"`
	FumbleLost int     `json:"fumble_lost"`
}
