package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]PlayerRole{
		"Batsman":            RoleBatsman,
		"BOWLER":             RoleBowler,
		"All-Rounder":        RoleAllRounder,
		"Allrounder":         RoleAllRounder,
		"Batting Allrounder": RoleAllRounder,
		"Bowling Allrounder": RoleAllRounder,
		"WK-Batsman":         RoleWicketKeeper,
		"Wicketkeeper":       RoleWicketKeeper,
		"wicket keeper":      RoleWicketKeeper,
		"":                   RoleBatsman,
		"Mystery":            RoleBatsman,
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeRole(input), "input %q", input)
	}
}
