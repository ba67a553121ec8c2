package serializers

import (
	"strings"

	"octofit/models"
)

// Exercise is loosely typed: a name plus sets and either reps or a duration.
type Exercise map[string]any

type Workout struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Exercises   []Exercise `json:"exercises"`
}

func SerializeWorkout(w models.Workout) Workout {
	return Workout{
		ID:          FormatID(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Exercises:   decodeEmbedded[Exercise](w.Exercises, "workouts", w.ID, "exercises"),
	}
}

type WorkoutInput struct {
	Name        *string                  `json:"name" validate:"required,min=1,max=100"`
	Description *string                  `json:"description" validate:"required,min=1"`
	Exercises   *EmbeddedArray[Exercise] `json:"exercises" validate:"omitempty,dive,required"`
}

func (in WorkoutInput) Present() []string {
	var fields []string
	if in.Name != nil {
		fields = append(fields, "Name")
	}
	if in.Description != nil {
		fields = append(fields, "Description")
	}
	if in.Exercises != nil {
		fields = append(fields, "Exercises")
	}
	return fields
}

func (in WorkoutInput) Build() (models.Workout, error) {
	w := models.Workout{Exercises: models.EmptyJSONArray}
	if err := in.Apply(&w); err != nil {
		return models.Workout{}, err
	}
	return w, nil
}

func (in WorkoutInput) Apply(w *models.Workout) error {
	if in.Name != nil {
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.Exercises != nil {
		exercises, err := encodeEmbedded(*in.Exercises)
		if err != nil {
			return invalid(err)
		}
		w.Exercises = exercises
	}
	return nil
}
