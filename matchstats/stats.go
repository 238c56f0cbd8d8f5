// Package matchstats turns a raw scorecard into the chart-ready panels the
// match statistics modal renders. All derivations are pure so the package
// stays trivially testable.
package matchstats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Surabhi11/fantasy-cricket/cricket"
)

const (
	topBatters     = 6
	topStrikeRates = 5
	topBoundaries  = 6
	topBowlers     = 6
	topEconomies   = 5
)

// Panel is a labelled numeric series, one value per label.
type Panel struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// BoundaryPanel splits fours and sixes per batter.
type BoundaryPanel struct {
	Labels []string `json:"labels"`
	Fours  []int    `json:"fours"`
	Sixes  []int    `json:"sixes"`
}

// BubblePoint plots one bowler: overs across, economy up, bubble sized by
// wickets.
type BubblePoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
}

// TeamRadar compares the two sides on runs, wickets, run rate, boundaries
// and extras.
type TeamRadar struct {
	Team   string     `json:"team"`
	Values [5]float64 `json:"values"`
}

// PhaseSplit is the estimated first-innings run distribution across the
// powerplay, middle and death phases.
type PhaseSplit struct {
	Powerplay float64 `json:"powerplay"`
	Middle    float64 `json:"middle"`
	Death     float64 `json:"death"`
}

type ExtrasBreakdown struct {
	Wides   int `json:"wides"`
	Noballs int `json:"noballs"`
	Byes    int `json:"byes"`
	Legbyes int `json:"legbyes"`
}

// SummaryLine is one labelled row of the match summary header.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TeamSeries is one side's runs, wickets and overs in the innings
// comparison, in that order.
type TeamSeries struct {
	Team string     `json:"team"`
	Data [3]float64 `json:"data"`
}

type InningsComparison struct {
	Labels []string     `json:"labels"`
	Teams  []TeamSeries `json:"teams"`
}

// Stats is the full modal payload.
type Stats struct {
	Summary           []SummaryLine     `json:"summary"`
	RunDistribution   Panel             `json:"runDistribution"`
	InningsComparison InningsComparison `json:"inningsComparison"`
	TopScorers        Panel             `json:"topScorers"`
	StrikeRates       Panel             `json:"strikeRates"`
	Boundaries        BoundaryPanel     `json:"boundaries"`
	WicketTakers      Panel             `json:"wicketTakers"`
	Economies         Panel             `json:"economies"`
	BowlerBubbles     []BubblePoint     `json:"bowlerBubbles"`
	TeamRadars        []TeamRadar       `json:"teamRadars"`
	PhaseSplit        PhaseSplit        `json:"phaseSplit"`
	Extras            ExtrasBreakdown   `json:"extras"`
}

// Build derives every panel from a scorecard. A card with no innings yields
// zeroed panels with empty slices rather than nils.
func Build(card *cricket.Scorecard) *Stats {
	innings := pickInnings(card)

	var batting []cricket.BattingEntry
	var bowling []cricket.BowlingEntry
	for _, inn := range innings {
		batting = append(batting, inn.Batting...)
		bowling = append(bowling, inn.Bowling...)
	}

	names := teamNames(card)

	stats := &Stats{
		Summary:           summary(card, names, innings),
		RunDistribution:   runDistribution(names, innings),
		InningsComparison: inningsComparison(names, innings),
		TopScorers:        topScorers(batting),
		StrikeRates:       strikeRates(batting),
		Boundaries:        boundaries(batting),
		WicketTakers:      wicketTakers(bowling),
		Economies:         economies(bowling),
		BowlerBubbles:     bowlerBubbles(bowling),
		TeamRadars:        teamRadars(innings),
		PhaseSplit:        phaseSplit(innings),
		Extras:            extrasBreakdown(innings),
	}
	return stats
}

// teamNames resolves display names for the two sides, preferring short
// names, then full names, then the plain teams list.
func teamNames(card *cricket.Scorecard) [2]string {
	names := [2]string{"Team 1", "Team 2"}
	for i := 0; i < 2; i++ {
		if i < len(card.TeamInfo) {
			if s := card.TeamInfo[i].Shortname; s != "" {
				names[i] = s
				continue
			}
			if n := card.TeamInfo[i].Name; n != "" {
				names[i] = n
				continue
			}
		}
		if i < len(card.Teams) && card.Teams[i] != "" {
			names[i] = card.Teams[i]
		}
	}
	return names
}

func inningsAt(innings []cricket.ScorecardInnings, i int) cricket.ScorecardInnings {
	if i < len(innings) {
		return innings[i]
	}
	return cricket.ScorecardInnings{}
}

func scoreLine(inn cricket.ScorecardInnings) string {
	return fmt.Sprintf("%s/%d (%s ov)", trimFloat(inn.Runs), inn.Wickets, trimFloat(inn.Overs))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func summary(card *cricket.Scorecard, names [2]string, innings []cricket.ScorecardInnings) []SummaryLine {
	matchName := card.Name
	if matchName == "" {
		matchName = "Cricket Match"
	}
	venue := card.Venue
	if venue == "" {
		venue = "TBA"
	}
	result := card.Status
	if result == "" {
		result = "In Progress"
	}
	return []SummaryLine{
		{Label: "Match", Value: matchName},
		{Label: "Venue", Value: venue},
		{Label: names[0], Value: scoreLine(inningsAt(innings, 0))},
		{Label: names[1], Value: scoreLine(inningsAt(innings, 1))},
		{Label: "Result", Value: result},
	}
}

func runDistribution(names [2]string, innings []cricket.ScorecardInnings) Panel {
	return Panel{
		Labels: []string{names[0], names[1]},
		Data:   []float64{inningsAt(innings, 0).Runs, inningsAt(innings, 1).Runs},
	}
}

func inningsComparison(names [2]string, innings []cricket.ScorecardInnings) InningsComparison {
	teams := make([]TeamSeries, 2)
	for i := 0; i < 2; i++ {
		inn := inningsAt(innings, i)
		teams[i] = TeamSeries{
			Team: names[i],
			Data: [3]float64{inn.Runs, float64(inn.Wickets), inn.Overs},
		}
	}
	return InningsComparison{
		Labels: []string{"Runs", "Wickets", "Overs"},
		Teams:  teams,
	}
}

// pickInnings tolerates both upstream scorecard shapes.
func pickInnings(card *cricket.Scorecard) []cricket.ScorecardInnings {
	if len(card.Innings) > 0 {
		return card.Innings
	}
	return card.Score
}

func topScorers(batting []cricket.BattingEntry) Panel {
	sorted := append([]cricket.BattingEntry(nil), batting...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Runs > sorted[j].Runs })
	sorted = capEntries(sorted, topBatters)

	panel := emptyPanel(len(sorted))
	for i, b := range sorted {
		panel.Labels[i] = lastName(b.Batsman.Name)
		panel.Data[i] = float64(b.Runs)
	}
	return panel
}

func strikeRates(batting []cricket.BattingEntry) Panel {
	sorted := append([]cricket.BattingEntry(nil), batting...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Runs > sorted[j].Runs })
	sorted = capEntries(sorted, topStrikeRates)

	panel := emptyPanel(len(sorted))
	for i, b := range sorted {
		sr := b.StrikeRate
		if sr == 0 && b.Balls > 0 {
			sr = float64(b.Runs) / float64(b.Balls) * 100
		}
		panel.Labels[i] = lastName(b.Batsman.Name)
		panel.Data[i] = round1(sr)
	}
	return panel
}

func boundaries(batting []cricket.BattingEntry) BoundaryPanel {
	sorted := append([]cricket.BattingEntry(nil), batting...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fours+sorted[i].Sixes > sorted[j].Fours+sorted[j].Sixes
	})
	sorted = capEntries(sorted, topBoundaries)

	panel := BoundaryPanel{
		Labels: make([]string, len(sorted)),
		Fours:  make([]int, len(sorted)),
		Sixes:  make([]int, len(sorted)),
	}
	for i, b := range sorted {
		panel.Labels[i] = lastName(b.Batsman.Name)
		panel.Fours[i] = b.Fours
		panel.Sixes[i] = b.Sixes
	}
	return panel
}

func wicketTakers(bowling []cricket.BowlingEntry) Panel {
	sorted := append([]cricket.BowlingEntry(nil), bowling...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Wickets > sorted[j].Wickets })
	sorted = capBowlers(sorted, topBowlers)

	panel := emptyPanel(len(sorted))
	for i, b := range sorted {
		panel.Labels[i] = lastName(b.Bowler.Name)
		panel.Data[i] = float64(b.Wickets)
	}
	return panel
}

func economies(bowling []cricket.BowlingEntry) Panel {
	sorted := append([]cricket.BowlingEntry(nil), bowling...)
	sort.SliceStable(sorted, func(i, j int) bool { return economyOf(sorted[i]) < economyOf(sorted[j]) })
	sorted = capBowlers(sorted, topEconomies)

	panel := emptyPanel(len(sorted))
	for i, b := range sorted {
		panel.Labels[i] = lastName(b.Bowler.Name)
		panel.Data[i] = round1(economyOf(b))
	}
	return panel
}

func bowlerBubbles(bowling []cricket.BowlingEntry) []BubblePoint {
	points := make([]BubblePoint, 0, len(bowling))
	for _, b := range bowling {
		points = append(points, BubblePoint{
			Label: lastName(b.Bowler.Name),
			X:     b.Overs,
			Y:     round1(economyOf(b)),
			R:     float64(b.Wickets*5 + 5),
		})
	}
	return points
}

func teamRadars(innings []cricket.ScorecardInnings) []TeamRadar {
	radars := make([]TeamRadar, 0, len(innings))
	for _, inn := range innings {
		var fours, sixes int
		for _, b := range inn.Batting {
			fours += b.Fours
			sixes += b.Sixes
		}
		runRate := 0.0
		if inn.Overs > 0 {
			runRate = round1(inn.Runs / inn.Overs)
		}
		radars = append(radars, TeamRadar{
			Team: teamLabel(inn.Inning),
			Values: [5]float64{
				inn.Runs,
				float64(inn.Wickets),
				runRate,
				float64(fours + sixes),
				float64(inn.Extras),
			},
		})
	}
	return radars
}

// phaseSplit estimates the first-innings phase distribution with the fixed
// 35/40/25 weighting.
func phaseSplit(innings []cricket.ScorecardInnings) PhaseSplit {
	if len(innings) == 0 {
		return PhaseSplit{}
	}
	total := innings[0].Runs
	return PhaseSplit{
		Powerplay: math.Round(total * 0.35),
		Middle:    math.Round(total * 0.40),
		Death:     math.Round(total * 0.25),
	}
}

func extrasBreakdown(innings []cricket.ScorecardInnings) ExtrasBreakdown {
	var out ExtrasBreakdown
	for _, inn := range innings {
		out.Wides += inn.Wides
		out.Noballs += inn.Noballs
		out.Byes += inn.Byes
		out.Legbyes += inn.Legbyes
	}
	return out
}

func economyOf(b cricket.BowlingEntry) float64 {
	if b.Economy != 0 {
		return b.Economy
	}
	if b.Overs > 0 {
		return float64(b.Runs) / b.Overs
	}
	return 0
}

// teamLabel strips the trailing "Inning 1" style suffix from an innings
// title, leaving the team name.
func teamLabel(inning string) string {
	if i := strings.Index(inning, " Inning"); i > 0 {
		return inning[:i]
	}
	return inning
}

// lastName shortens chart labels to the player's final name token.
func lastName(full string) string {
	fields := strings.Fields(strings.TrimSpace(full))
	if len(fields) == 0 {
		return full
	}
	return fields[len(fields)-1]
}

func emptyPanel(n int) Panel {
	return Panel{Labels: make([]string, n), Data: make([]float64, n)}
}

func capEntries(entries []cricket.BattingEntry, n int) []cricket.BattingEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func capBowlers(entries []cricket.BowlingEntry, n int) []cricket.BowlingEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
