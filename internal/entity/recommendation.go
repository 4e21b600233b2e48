package entity

// Recommendation - move suggested for the player to move.
type Recommendation struct {
	Move   int       `json:"move"`
	Player Mark      `json:"player"`
	Value  GameValue `json:"value"`
}

func (that *Recommendation) HasMove() bool {
	return that.Move != NoMove
}
