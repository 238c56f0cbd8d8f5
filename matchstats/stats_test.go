package matchstats

import (
	"testing"

	"github.com/Surabhi11/fantasy-cricket/cricket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScorecard() *cricket.Scorecard {
	return &cricket.Scorecard{
		ID:     "m1",
		Name:   "India vs Australia",
		Venue:  "Wankhede Stadium",
		Status: "India won by 20 runs",
		Teams:  []string{"India", "Australia"},
		TeamInfo: []cricket.TeamInfo{
			{Name: "India", Shortname: "IND"},
			{Name: "Australia", Shortname: "AUS"},
		},
		Innings: []cricket.ScorecardInnings{
			{
				Inning:  "India Inning 1",
				Runs:    180,
				Wickets: 6,
				Overs:   20,
				Extras:  12,
				Wides:   7,
				Noballs: 2,
				Byes:    1,
				Legbyes: 2,
				Batting: []cricket.BattingEntry{
					{Batsman: cricket.NamedRef{ID: "b1", Name: "Virat Kohli"}, Runs: 82, Balls: 50, Fours: 8, Sixes: 3, StrikeRate: 164},
					{Batsman: cricket.NamedRef{ID: "b2", Name: "Rohit Sharma"}, Runs: 45, Balls: 30, Fours: 5, Sixes: 1, StrikeRate: 150},
					{Batsman: cricket.NamedRef{ID: "b3", Name: "Suryakumar Yadav"}, Runs: 30, Balls: 15, Fours: 2, Sixes: 2},
				},
				Bowling: []cricket.BowlingEntry{
					{Bowler: cricket.NamedRef{ID: "w1", Name: "Pat Cummins"}, Overs: 4, Runs: 28, Wickets: 3, Economy: 7},
					{Bowler: cricket.NamedRef{ID: "w2", Name: "Mitchell Starc"}, Overs: 4, Runs: 40, Wickets: 1},
				},
			},
			{
				Inning:  "Australia Inning 1",
				Runs:    160,
				Wickets: 8,
				Overs:   20,
				Extras:  8,
				Wides:   4,
				Legbyes: 1,
				Batting: []cricket.BattingEntry{
					{Batsman: cricket.NamedRef{ID: "b4", Name: "Travis Head"}, Runs: 60, Balls: 40, Fours: 6, Sixes: 2, StrikeRate: 150},
				},
				Bowling: []cricket.BowlingEntry{
					{Bowler: cricket.NamedRef{ID: "w3", Name: "Jasprit Bumrah"}, Overs: 4, Runs: 16, Wickets: 4, Economy: 4},
				},
			},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	stats := Build(sampleScorecard())

	require.Len(t, stats.Summary, 5)
	assert.Equal(t, SummaryLine{Label: "Match", Value: "India vs Australia"}, stats.Summary[0])
	assert.Equal(t, SummaryLine{Label: "Venue", Value: "Wankhede Stadium"}, stats.Summary[1])
	assert.Equal(t, SummaryLine{Label: "IND", Value: "180/6 (20 ov)"}, stats.Summary[2])
	assert.Equal(t, SummaryLine{Label: "AUS", Value: "160/8 (20 ov)"}, stats.Summary[3])
	assert.Equal(t, SummaryLine{Label: "Result", Value: "India won by 20 runs"}, stats.Summary[4])
}

func TestBuildSummaryDefaults(t *testing.T) {
	stats := Build(&cricket.Scorecard{ID: "m2"})

	require.Len(t, stats.Summary, 5)
	assert.Equal(t, SummaryLine{Label: "Match", Value: "Cricket Match"}, stats.Summary[0])
	assert.Equal(t, SummaryLine{Label: "Venue", Value: "TBA"}, stats.Summary[1])
	assert.Equal(t, SummaryLine{Label: "Team 1", Value: "0/0 (0 ov)"}, stats.Summary[2])
	assert.Equal(t, SummaryLine{Label: "Result", Value: "In Progress"}, stats.Summary[4])
}

func TestBuildRunDistribution(t *testing.T) {
	stats := Build(sampleScorecard())

	assert.Equal(t, []string{"IND", "AUS"}, stats.RunDistribution.Labels)
	assert.Equal(t, []float64{180, 160}, stats.RunDistribution.Data)
}

func TestBuildInningsComparison(t *testing.T) {
	stats := Build(sampleScorecard())

	assert.Equal(t, []string{"Runs", "Wickets", "Overs"}, stats.InningsComparison.Labels)
	require.Len(t, stats.InningsComparison.Teams, 2)
	assert.Equal(t, TeamSeries{Team: "IND", Data: [3]float64{180, 6, 20}}, stats.InningsComparison.Teams[0])
	assert.Equal(t, TeamSeries{Team: "AUS", Data: [3]float64{160, 8, 20}}, stats.InningsComparison.Teams[1])
}

func TestTeamNamesFallBackToTeamsList(t *testing.T) {
	card := sampleScorecard()
	card.TeamInfo = nil

	stats := Build(card)
	assert.Equal(t, []string{"India", "Australia"}, stats.RunDistribution.Labels)
}

func TestBuildTopScorers(t *testing.T) {
	stats := Build(sampleScorecard())

	require.Len(t, stats.TopScorers.Labels, 4)
	assert.Equal(t, []string{"Kohli", "Head", "Sharma", "Yadav"}, stats.TopScorers.Labels)
	assert.Equal(t, []float64{82, 60, 45, 30}, stats.TopScorers.Data)
}

func TestBuildStrikeRateFallback(t *testing.T) {
	stats := Build(sampleScorecard())

	// Yadav has no upstream strike rate; 30 runs from 15 balls derives 200.
	idx := -1
	for i, label := range stats.StrikeRates.Labels {
		if label == "Yadav" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 200.0, stats.StrikeRates.Data[idx])
}

func TestBuildBoundaries(t *testing.T) {
	stats := Build(sampleScorecard())

	require.NotEmpty(t, stats.Boundaries.Labels)
	assert.Equal(t, "Kohli", stats.Boundaries.Labels[0])
	assert.Equal(t, 8, stats.Boundaries.Fours[0])
	assert.Equal(t, 3, stats.Boundaries.Sixes[0])
}

func TestBuildBowlingPanels(t *testing.T) {
	stats := Build(sampleScorecard())

	require.NotEmpty(t, stats.WicketTakers.Labels)
	assert.Equal(t, "Bumrah", stats.WicketTakers.Labels[0])
	assert.Equal(t, 4.0, stats.WicketTakers.Data[0])

	// Starc has no upstream economy; 40 runs from 4 overs derives 10.
	idx := -1
	for i, label := range stats.Economies.Labels {
		if label == "Starc" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 10.0, stats.Economies.Data[idx])

	// Bubble radius scales with wickets.
	for _, point := range stats.BowlerBubbles {
		if point.Label == "Bumrah" {
			assert.Equal(t, 25.0, point.R)
		}
		if point.Label == "Starc" {
			assert.Equal(t, 10.0, point.R)
		}
	}
}

func TestBuildTeamRadars(t *testing.T) {
	stats := Build(sampleScorecard())

	require.Len(t, stats.TeamRadars, 2)
	india := stats.TeamRadars[0]
	assert.Equal(t, "India", india.Team)
	assert.Equal(t, 180.0, india.Values[0])
	assert.Equal(t, 6.0, india.Values[1])
	assert.Equal(t, 9.0, india.Values[2])  // 180 runs / 20 overs
	assert.Equal(t, 21.0, india.Values[3]) // 15 fours + 6 sixes
	assert.Equal(t, 12.0, india.Values[4])
}

func TestBuildPhaseSplit(t *testing.T) {
	stats := Build(sampleScorecard())

	assert.Equal(t, 63.0, stats.PhaseSplit.Powerplay) // 180 * 0.35
	assert.Equal(t, 72.0, stats.PhaseSplit.Middle)    // 180 * 0.40
	assert.Equal(t, 45.0, stats.PhaseSplit.Death)     // 180 * 0.25
}

func TestBuildExtrasSummedAcrossInnings(t *testing.T) {
	stats := Build(sampleScorecard())

	assert.Equal(t, 11, stats.Extras.Wides)
	assert.Equal(t, 2, stats.Extras.Noballs)
	assert.Equal(t, 1, stats.Extras.Byes)
	assert.Equal(t, 3, stats.Extras.Legbyes)
}

func TestBuildEmptyScorecard(t *testing.T) {
	stats := Build(&cricket.Scorecard{ID: "m2"})

	assert.Empty(t, stats.TopScorers.Labels)
	assert.Empty(t, stats.WicketTakers.Labels)
	assert.Empty(t, stats.BowlerBubbles)
	assert.Empty(t, stats.TeamRadars)
	assert.Zero(t, stats.PhaseSplit.Powerplay)
	assert.Zero(t, stats.Extras.Wides)
}

func TestBuildFallsBackToScoreField(t *testing.T) {
	card := sampleScorecard()
	card.Score = card.Innings
	card.Innings = nil

	stats := Build(card)
	assert.Len(t, stats.TeamRadars, 2)
}

func TestBuildTopNCaps(t *testing.T) {
	card := &cricket.Scorecard{Innings: []cricket.ScorecardInnings{{Inning: "X Inning 1"}}}
	for i := 0; i < 10; i++ {
		card.Innings[0].Batting = append(card.Innings[0].Batting, cricket.BattingEntry{
			Batsman: cricket.NamedRef{Name: "Player Name"}, Runs: i,
		})
		card.Innings[0].Bowling = append(card.Innings[0].Bowling, cricket.BowlingEntry{
			Bowler: cricket.NamedRef{Name: "Bowler Name"}, Overs: 2, Runs: i, Wickets: 1,
		})
	}

	stats := Build(card)
	assert.Len(t, stats.TopScorers.Labels, 6)
	assert.Len(t, stats.StrikeRates.Labels, 5)
	assert.Len(t, stats.Boundaries.Labels, 6)
	assert.Len(t, stats.WicketTakers.Labels, 6)
	assert.Len(t, stats.Economies.Labels, 5)
}
