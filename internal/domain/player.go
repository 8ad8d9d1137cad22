package domain

import (
	"fmt"
	"sort"
)

// Player identifies a game participant. Players compare by identity only.
type Player int

// PlayerNone is the zero Player, used where no player is selected.
const PlayerNone Player = 0

func (p Player) String() string {
	if p == PlayerNone {
		return "ANY"
	}
	return fmt.Sprintf("Agent[%02d]", int(p))
}

type Role string

const (
	RoleVillager  Role = "VILLAGER"
	RoleSeer      Role = "SEER"
	RoleMedium    Role = "MEDIUM"
	RoleBodyguard Role = "BODYGUARD"
	RolePossessed Role = "POSSESSED"
	RoleWerewolf  Role = "WEREWOLF"
)

// RoleInvestigator is the role whose divination reports carry evidentiary weight.
const RoleInvestigator = RoleSeer

// RolePostMortemInvestigator reports on players that have already been eliminated.
const RolePostMortemInvestigator = RoleMedium

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleVillager, RoleSeer, RoleMedium, RoleBodyguard, RolePossessed, RoleWerewolf:
		return true
	}
	return false
}

type Species string

const (
	SpeciesHuman    Species = "HUMAN"
	SpeciesWerewolf Species = "WEREWOLF"
)

func ValidSpecies(s string) bool {
	switch Species(s) {
	case SpeciesHuman, SpeciesWerewolf:
		return true
	}
	return false
}

type Status string

const (
	StatusAlive Status = "ALIVE"
	StatusDead  Status = "DEAD"
)

// SortPlayers orders players by identity in place and returns the slice.
func SortPlayers(ps []Player) []Player {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
	return ps
}
