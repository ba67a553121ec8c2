package serializers

import (
	"errors"
	"strings"
	"time"

	"octofit/models"
)

type Activity struct {
	ID           string  `json:"id"`
	User         string  `json:"user"`
	ActivityType string  `json:"activity_type"`
	Duration     float64 `json:"duration"`
	Date         string  `json:"date"`
}

func SerializeActivity(a models.Activity) Activity {
	return Activity{
		ID:           FormatID(a.ID),
		User:         a.User,
		ActivityType: a.ActivityType,
		Duration:     a.Duration,
		Date:         a.Date.Format(DateLayout),
	}
}

type ActivityInput struct {
	User         *string  `json:"user" validate:"required,min=1,max=100"`
	ActivityType *string  `json:"activity_type" validate:"required,min=1,max=100"`
	Duration     *float64 `json:"duration" validate:"required"`
	Date         *string  `json:"date" validate:"required,datetime=2006-01-02"`
}

func (in ActivityInput) Present() []string {
	var fields []string
	if in.User != nil {
		fields = append(fields, "User")
	}
	if in.ActivityType != nil {
		fields = append(fields, "ActivityType")
	}
	if in.Duration != nil {
		fields = append(fields, "Duration")
	}
	if in.Date != nil {
		fields = append(fields, "Date")
	}
	return fields
}

func (in ActivityInput) Build() (models.Activity, error) {
	var a models.Activity
	if err := in.Apply(&a); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

func (in ActivityInput) Apply(a *models.Activity) error {
	if in.Date != nil {
		date, err := time.Parse(DateLayout, strings.TrimSpace(*in.Date))
		if err != nil {
			return invalid(errors.New("date must be a date in YYYY-MM-DD format"))
		}
		a.Date = date
	}
	if in.User != nil {
		a.User = strings.TrimSpace(*in.User)
	}
	if in.ActivityType != nil {
		a.ActivityType = strings.TrimSpace(*in.ActivityType)
	}
	if in.Duration != nil {
		a.Duration = *in.Duration
	}
	return nil
}
