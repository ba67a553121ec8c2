package serializers

import (
	"strings"

	"octofit/models"
)

type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func SerializeTeam(t models.Team) Team {
	return Team{
		ID:      FormatID(t.ID),
		Name:    t.Name,
		Members: decodeEmbedded[string](t.Members, "teams", t.ID, "members"),
	}
}

type TeamInput struct {
	Name    *string                `json:"name" validate:"required,min=1,max=100"`
	Members *EmbeddedArray[string] `json:"members" validate:"omitempty,dive,min=1,max=254"`
}

func (in TeamInput) Present() []string {
	var fields []string
	if in.Name != nil {
		fields = append(fields, "Name")
	}
	if in.Members != nil {
		fields = append(fields, "Members")
	}
	return fields
}

func (in TeamInput) Build() (models.Team, error) {
	t := models.Team{Members: models.EmptyJSONArray}
	if err := in.Apply(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

func (in TeamInput) Apply(t *models.Team) error {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Members != nil {
		members, err := encodeEmbedded(*in.Members)
		if err != nil {
			return invalid(err)
		}
		t.Members = members
	}
	return nil
}
