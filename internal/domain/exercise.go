package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty levels an exercise can be tagged with in the catalog.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ExerciseImage holds the object-storage key of the exercise image plus
// accessibility text. The actual file resides in the asset bucket.
type ExerciseImage struct {
	ObjectKey string `bson:"objectKey" json:"objectKey"`
	Alt       string `bson:"alt,omitempty" json:"alt,omitempty"`
}

// Exercise represents a single exercise definition in the catalog.
// Catalog entries are created and edited by external content tooling;
// this application only reads them.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty  Difficulty         `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Image       *ExerciseImage     `bson:"image,omitempty" json:"image,omitempty"`
	VideoURL    string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
