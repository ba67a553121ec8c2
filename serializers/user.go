package serializers

import (
	"strings"

	"octofit/models"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func SerializeUser(u models.User) User {
	return User{
		ID:    FormatID(u.ID),
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
	}
}

type UserInput struct {
	Name  *string `json:"name" validate:"required,min=1,max=100"`
	Email *string `json:"email" validate:"required,max=254,mailbox"`
	Age   *int    `json:"age" validate:"required"`
}

func (in UserInput) Present() []string {
	var fields []string
	if in.Name != nil {
		fields = append(fields, "Name")
	}
	if in.Email != nil {
		fields = append(fields, "Email")
	}
	if in.Age != nil {
		fields = append(fields, "Age")
	}
	return fields
}

func (in UserInput) Build() (models.User, error) {
	var u models.User
	if err := in.Apply(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (in UserInput) Apply(u *models.User) error {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Age != nil {
		u.Age = *in.Age
	}
	return nil
}
