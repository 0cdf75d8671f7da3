package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightUnit is the unit a set's weight was recorded in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// DefaultWeightUnit is what new sets fall back to when no preference
// has ever been persisted.
const DefaultWeightUnit = UnitLbs

// IsValid reports whether u is one of the two supported units.
func (u WeightUnit) IsValid() bool {
	return u == UnitKg || u == UnitLbs
}

// WorkoutSet is one performed set within an exercise-instance.
// Weight is optional (bodyweight movements); nil means "not recorded".
type WorkoutSet struct {
	Reps       int        `bson:"reps" json:"reps"`
	Weight     *float64   `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit WeightUnit `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
}

// ExerciseInstance is one performed exercise within a workout. It holds a
// reference to the catalog exercise by id only; no denormalized copy is
// stored, the name/description are re-expanded at read time.
type ExerciseInstance struct {
	ExerciseID primitive.ObjectID `bson:"exercise" json:"exercise"`
	Sets       []WorkoutSet       `bson:"sets" json:"sets"`
}

// Workout is a persisted workout record. It is created whole by the
// submission adapter and immutable thereafter except for whole-record
// deletion; sets and exercise-instances are embedded, never separate
// documents.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"` // external auth provider id
	Date      time.Time          `bson:"date" json:"date"`
	Duration  int                `bson:"duration" json:"duration"` // whole seconds, >= 1
	Exercises []ExerciseInstance `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
