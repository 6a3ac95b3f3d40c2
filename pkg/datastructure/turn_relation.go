package datastructure

import (
	"fmt"
	"strings"
)

type TurnRestrictionType uint8

const (
	UNSUPPORTED TurnRestrictionType = iota
	NOT
	NO_LEFT_TURN
	NO_RIGHT_TURN
	NO_STRAIGHT_ON
	NO_U_TURN
	NO_ENTRY
	ONLY_LEFT_TURN
	ONLY_RIGHT_TURN
	ONLY_STRAIGHT_ON
)

func (t TurnRestrictionType) String() string {
	return [...]string{"unsupported", "not", "no_left_turn", "no_right_turn", "no_straight_on", "no_u_turn",
		"no_entry", "only_left_turn", "only_right_turn", "only_straight_on"}[t]
}

// IsOnly. restrictions that forbid every other exit at the via node.
func (t TurnRestrictionType) IsOnly() bool {
	return t == ONLY_LEFT_TURN || t == ONLY_RIGHT_TURN || t == ONLY_STRAIGHT_ON
}

// GetRestrictionType. https://wiki.openstreetmap.org/wiki/Relation:restriction
// a bare "no" is the generic prohibition used by the road tables.
func GetRestrictionType(restriction string) TurnRestrictionType {
	switch strings.ToLower(strings.TrimSpace(restriction)) {
	case "no":
		return NOT
	case "no_left_turn":
		return NO_LEFT_TURN
	case "no_right_turn":
		return NO_RIGHT_TURN
	case "no_straight_on":
		return NO_STRAIGHT_ON
	case "no_u_turn":
		return NO_U_TURN
	case "no_entry", "no_exit":
		return NO_ENTRY
	case "only_left_turn":
		return ONLY_LEFT_TURN
	case "only_right_turn":
		return ONLY_RIGHT_TURN
	case "only_straight_on":
		return ONLY_STRAIGHT_ON
	default:
		return UNSUPPORTED
	}
}

// TurnRelation. (fromWay, viaNode, toWay, kind) resolved from way endpoints.
type TurnRelation struct {
	FromWayID             int64
	ViaNode               Index
	ToWayID               int64
	Restriction           TurnRestrictionType
	VehicleTypeRestricted string
}

func NewTurnRelation(fromWayID int64, viaNode Index, toWayID int64, restriction TurnRestrictionType) TurnRelation {
	return TurnRelation{
		FromWayID:   fromWayID,
		ViaNode:     viaNode,
		ToWayID:     toWayID,
		Restriction: restriction,
	}
}

func (r TurnRelation) String() string {
	return fmt.Sprintf("*-(%d)->%d-(%d)->* (%s)", r.FromWayID, r.ViaNode, r.ToWayID, r.Restriction)
}
