package domain

import (
	"fmt"
	"math"
	"strings"
)

// Profile is the signed-in user and their goals.
type Profile struct {
	Name          string  `json:"name"`
	Initials      string  `json:"initials"`
	Role          string  `json:"role"`
	CurrentWeight float64 `json:"current_weight"` // kg
	GoalWeight    float64 `json:"goal_weight"`    // kg
	Steps         int     `json:"steps"`
	StepGoal      int     `json:"step_goal"`
	MissedAlert   bool    `json:"missed_alert"` // missed-workout banner still showing
}

// SignedIn reports whether a role is set.
func (p Profile) SignedIn() bool {
	return p.Role != ""
}

// InitialsFor derives up to two initials from a display name.
func InitialsFor(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, []rune(strings.ToUpper(word))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// WeightToGoal describes the remaining distance to the goal weight.
func WeightToGoal(current, goal float64) string {
	if current > goal {
		return fmt.Sprintf("%.1f kg to goal", current-goal)
	}
	return "Goal reached!"
}

// WeightDelta is the signed gap between current and goal, e.g. "-1.5 kg".
func WeightDelta(current, goal float64) string {
	sign := "+"
	if current > goal {
		sign = "-"
	}
	return fmt.Sprintf("%s%.1f kg", sign, math.Abs(current-goal))
}
