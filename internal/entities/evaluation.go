package entities

// Grade is a letter rating from SS down to F
type Grade string

// Grades, best first
const (
	GradeSS Grade = "SS"
	GradeS  Grade = "S"
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeF  Grade = "F"
)

// PlayerRating is one player's end-of-game result
type PlayerRating struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Grade    Grade   `json:"grade"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}

// Evaluation is the end-of-game report for a whole group
type Evaluation struct {
	GameID       string         `json:"game_id"`
	OverallGrade Grade          `json:"overall_grade"`
	Players      []PlayerRating `json:"players"`
	Objectives   []string       `json:"objectives"`
}
