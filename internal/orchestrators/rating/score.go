package rating

import (
	"fmt"

	"github.com/KirkDiggler/horror-bot/internal/entities"
)

// Component weights of the blended score. The bonus tier itself is at most
// 0.2, so it moves a score by at most 0.04.
const (
	visibleWeight = 0.5
	hiddenWeight  = 0.3
	bonusWeight   = 0.2
)

// Reason texts shown to players. They only describe health and sanity; the
// Format variants take the values shown.
const (
	ReasonEliminated    = "Eliminated in the dark."
	ReasonBroken        = "Survived, but broken by fear."
	ReasonInjuredFormat = "Survived, badly injured (HP: %d/100)."
	ReasonShakenFormat  = "Survived with a damaged mind (Sanity: %d/100)."
	ReasonWellFormat    = "Survived in good shape (HP: %d/100, Sanity: %d/100)."
)

type threshold struct {
	min   float64
	grade entities.Grade
}

var playerThresholds = []threshold{
	{0.92, entities.GradeSS},
	{0.82, entities.GradeS},
	{0.72, entities.GradeA},
	{0.56, entities.GradeB},
	{0.40, entities.GradeC},
	{0.24, entities.GradeD},
}

var overallThresholds = []threshold{
	{0.85, entities.GradeSS},
	{0.75, entities.GradeS},
	{0.60, entities.GradeA},
	{0.45, entities.GradeB},
	{0.30, entities.GradeC},
	{0.15, entities.GradeD},
}

// Score blends the visible and hidden components into [0,1]
func Score(p *entities.Player) float64 {
	visible := float64(p.HP+p.Sanity) / float64(2*entities.MaxStat)
	hidden := (unit(p.Agility) + unit(p.Accuracy)) / 2

	return clamp01(visibleWeight*visible + hiddenWeight*hidden + bonusWeight*bonus(p))
}

// PlayerGrade maps a single player's score onto the letter scale
func PlayerGrade(score float64) entities.Grade {
	return grade(score, playerThresholds)
}

// OverallGrade maps the mean player score onto the letter scale
func OverallGrade(mean float64) entities.Grade {
	return grade(mean, overallThresholds)
}

// Reason describes how a player ended the game
func Reason(p *entities.Player) string {
	switch {
	case p.HP <= 0:
		return ReasonEliminated
	case p.Sanity <= 20:
		return ReasonBroken
	case p.HP <= 30:
		return fmt.Sprintf(ReasonInjuredFormat, p.HP)
	case p.Sanity <= 40:
		return fmt.Sprintf(ReasonShakenFormat, p.Sanity)
	default:
		return fmt.Sprintf(ReasonWellFormat, p.HP, p.Sanity)
	}
}

func bonus(p *entities.Player) float64 {
	switch {
	case p.HP > 0 && p.Sanity > 30 && (p.Agility > 60 || p.Accuracy > 60):
		return 0.2
	case p.HP > 50 && p.Sanity > 50:
		return 0.1
	case p.HP > 0:
		return 0.05
	default:
		return 0
	}
}

func grade(score float64, table []threshold) entities.Grade {
	for _, t := range table {
		if score >= t.min {
			return t.grade
		}
	}
	return entities.GradeF
}

func unit(stat int) float64 {
	return clamp01(float64(stat) / float64(entities.MaxStat))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
