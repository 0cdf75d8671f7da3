package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// DraftSet is one set of an in-progress workout. The ID is generated
// locally and the Completed flag only drives the editing UI; neither
// survives submission.
type DraftSet struct {
	ID         string     `json:"id"`
	Reps       int        `json:"reps"`
	Weight     *float64   `json:"weight,omitempty"`
	WeightUnit WeightUnit `json:"weightUnit"`
	Completed  bool       `json:"completed"`
}

// DraftExercise is one exercise entry of an in-progress workout. Its ID is
// local and distinct from the catalog id it references; Name is cached at
// add-time so the editing view needs no refetch. Repeats of the same
// catalog exercise are valid entries (supersets).
type DraftExercise struct {
	ID         string             `json:"id"`
	ExerciseID primitive.ObjectID `json:"exerciseId"`
	Name       string             `json:"name"`
	Sets       []DraftSet         `json:"sets"`
}
