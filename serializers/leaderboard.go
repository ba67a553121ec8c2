package serializers

import (
	"strings"

	"octofit/models"
)

type Leaderboard struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Score int    `json:"score"`
}

func SerializeLeaderboard(l models.Leaderboard) Leaderboard {
	return Leaderboard{
		ID:    FormatID(l.ID),
		User:  l.User,
		Score: l.Score,
	}
}

type LeaderboardInput struct {
	User  *string `json:"user" validate:"required,min=1,max=100"`
	Score *int    `json:"score" validate:"required"`
}

func (in LeaderboardInput) Present() []string {
	var fields []string
	if in.User != nil {
		fields = append(fields, "User")
	}
	if in.Score != nil {
		fields = append(fields, "Score")
	}
	return fields
}

func (in LeaderboardInput) Build() (models.Leaderboard, error) {
	var l models.Leaderboard
	if err := in.Apply(&l); err != nil {
		return models.Leaderboard{}, err
	}
	return l, nil
}

func (in LeaderboardInput) Apply(l *models.Leaderboard) error {
	if in.User != nil {
		l.User = strings.TrimSpace(*in.User)
	}
	if in.Score != nil {
		l.Score = *in.Score
	}
	return nil
}
