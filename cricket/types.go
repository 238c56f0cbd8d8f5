package cricket

import "encoding/json"

// TeamInfo is the upstream team descriptor attached to matches.
type TeamInfo struct {
	Name      string `json:"name"`
	Shortname string `json:"shortname"`
	Img       string `json:"img"`
}

// InningsScore is the compact per-innings score attached to match records.
type InningsScore struct {
	Runs    float64 `json:"r"`
	Wickets int     `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning"`
}

// Match is the normalized match record served to the front end. Upstream
// GMT timestamps are accompanied by a preformatted IST display string.
type Match struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	MatchType      string         `json:"matchType"`
	Status         string         `json:"status"`
	Venue          string         `json:"venue"`
	Date           string         `json:"date"`
	DateTimeGMT    string         `json:"dateTimeGMT"`
	DateTimeIST    string         `json:"dateTimeIST"`
	Teams          []string       `json:"teams"`
	TeamInfo       []TeamInfo     `json:"teamInfo,omitempty"`
	Score          []InningsScore `json:"score"`
	TossWinner     string         `json:"tossWinner,omitempty"`
	TossChoice     string         `json:"tossChoice,omitempty"`
	MatchWinner    string         `json:"matchWinner,omitempty"`
	SeriesID       string         `json:"seriesId,omitempty"`
	SeriesName     string         `json:"seriesName,omitempty"`
	FantasyEnabled bool           `json:"fantasyEnabled"`
	HasSquad       bool           `json:"hasSquad"`
	MatchStarted   bool           `json:"matchStarted"`
	MatchEnded     bool           `json:"matchEnded"`
}

// MatchesResult splits the match feed the way the lobby renders it.
type MatchesResult struct {
	Live      []Match `json:"live"`
	Upcoming  []Match `json:"upcoming"`
	Completed []Match `json:"completed"`
	Total     int     `json:"total"`
}

// LiveScore is the compact ticker record from the cricScore feed.
type LiveScore struct {
	ID          string `json:"id"`
	MatchType   string `json:"matchType"`
	Status      string `json:"status"`
	MatchStatus string `json:"matchStatus"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	Team1Score  string `json:"team1Score"`
	Team2Score  string `json:"team2Score"`
	Team1Img    string `json:"team1Img"`
	Team2Img    string `json:"team2Img"`
	Series      string `json:"series"`
	DateTimeGMT string `json:"dateTimeGMT"`
	DateTimeIST string `json:"dateTimeIST"`
}

// SquadPlayer carries the estimated fantasy credit alongside the upstream
// player record.
type SquadPlayer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	BattingStyle string  `json:"battingStyle,omitempty"`
	BowlingStyle string  `json:"bowlingStyle,omitempty"`
	Country      string  `json:"country,omitempty"`
	PlayerImg    string  `json:"playerImg,omitempty"`
	Credits      float64 `json:"credits"`
}

type SquadTeam struct {
	TeamName  string        `json:"teamName"`
	Shortname string        `json:"shortname"`
	Img       string        `json:"img"`
	Players   []SquadPlayer `json:"players"`
}

// Series is a thin slice of the upstream series record; StartDate keeps
// the upstream date string.
type Series struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	Matches   int    `json:"matches"`
}

type SeriesResult struct {
	Series []Series `json:"series"`
	Total  int      `json:"total"`
}

// NamedRef appears where the upstream nests a player reference.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BattingEntry struct {
	Batsman    NamedRef `json:"batsman"`
	Runs       int      `json:"r"`
	Balls      int      `json:"b"`
	Fours      int      `json:"4s"`
	Sixes      int      `json:"6s"`
	StrikeRate float64  `json:"sr"`
}

type BowlingEntry struct {
	Bowler  NamedRef `json:"bowler"`
	Overs   float64  `json:"o"`
	Runs    int      `json:"r"`
	Maidens int      `json:"m"`
	Wickets int      `json:"w"`
	Economy float64  `json:"eco"`
}

// ScorecardInnings holds one innings of a scorecard. Absent upstream
// fields decode to zero values, which is exactly the display default.
type ScorecardInnings struct {
	Inning  string         `json:"inning"`
	Runs    float64        `json:"r"`
	Wickets int            `json:"w"`
	Overs   float64        `json:"o"`
	Batting []BattingEntry `json:"batting"`
	Bowling []BowlingEntry `json:"bowling"`
	Extras  int            `json:"extras"`
	Wides   int            `json:"wides"`
	Noballs int            `json:"noballs"`
	Byes    int            `json:"byes"`
	Legbyes int            `json:"legbyes"`
}

type Scorecard struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	MatchType string             `json:"matchType"`
	Status    string             `json:"status"`
	Venue     string             `json:"venue"`
	Teams     []string           `json:"teams"`
	TeamInfo  []TeamInfo         `json:"teamInfo"`
	Score     []ScorecardInnings `json:"score"`
	Innings   []ScorecardInnings `json:"scorecard"`
}

// apiEnvelope is the upstream response wrapper; Data stays raw until the
// caller picks a concrete shape.
type apiEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Info   struct {
		TotalRows int `json:"totalRows"`
	} `json:"info"`
}
