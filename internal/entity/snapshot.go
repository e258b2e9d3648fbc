package entity

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
	StatusDraw     = "draw"

	TargetFree     = "free"
	TargetForced   = "forced"
	TargetGameOver = "game_over"
)

// Snapshot is a read-only copy of a game for renderers and the HTTP bridge.
type Snapshot struct {
	Board         [BoardSize][BoardSize]string `json:"board"`
	Winners       [BoardSize]string            `json:"winners"`
	CurrentPlayer string                       `json:"current_player"`
	Target        TargetView                   `json:"target"`
	Status        string                       `json:"status"`
	Winner        string                       `json:"winner,omitempty"`
	LegalMoves    []Position                   `json:"legal_moves"`
	Moves         []string                     `json:"moves"`
}

type TargetView struct {
	Kind     string `json:"kind"`
	SubBoard *int   `json:"sub_board,omitempty"`
}

func (that *Game) Snapshot() Snapshot {
	snapshot := Snapshot{
		CurrentPlayer: that.turn.String(),
		Target:        that.target.view(),
		Status:        StatusOngoing,
		LegalMoves:    that.LegalMoves(),
		Moves:         that.Moves(),
	}

	for sb := range BoardSize {
		snapshot.Winners[sb] = that.winners[sb].String()
		for i, owner := range that.SubBoard(sb) {
			snapshot.Board[sb][i] = owner.String()
		}
	}

	switch winner := that.Winner(); {
	case winner != PlayerNone:
		snapshot.Status = StatusFinished
		snapshot.Winner = winner.String()
	case that.IsDraw():
		snapshot.Status = StatusDraw
	}

	if snapshot.LegalMoves == nil {
		snapshot.LegalMoves = []Position{}
	}
	if snapshot.Moves == nil {
		snapshot.Moves = []string{}
	}

	return snapshot
}

func (that Target) view() TargetView {
	switch that.kind {
	case targetForced:
		index := that.index
		return TargetView{Kind: TargetForced, SubBoard: &index}
	case targetGameOver:
		return TargetView{Kind: TargetGameOver}
	default:
		return TargetView{Kind: TargetFree}
	}
}

func (that Snapshot) IsFinished() bool {
	return that.Status != StatusOngoing
}
