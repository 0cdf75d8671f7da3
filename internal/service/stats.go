package service

import (
	"alcyxob/fittrack/internal/domain"
	"fmt"
	"math"
)

// VolumeResult is a training-load total plus the unit it is displayed in.
type VolumeResult struct {
	Volume float64           `json:"volume"`
	Unit   domain.WeightUnit `json:"unit"`
}

// FormatDuration renders whole seconds in the three-tier display format
// the screens were built around. The exact shapes are load-bearing:
//
//	5    -> "0.05 secs"
//	90   -> "1.30 min"
//	3661 -> "1:01:01 hr"
func FormatDuration(totalSecs int) string {
	if totalSecs < 60 {
		return fmt.Sprintf("0.%02d secs", totalSecs)
	}
	if totalSecs < 3600 {
		mins := totalSecs / 60
		secs := totalSecs % 60
		return fmt.Sprintf("%d.%02d min", mins, secs)
	}
	hours := totalSecs / 3600
	mins := (totalSecs % 3600) / 60
	secs := totalSecs % 60
	return fmt.Sprintf("%d:%02d:%02d hr", hours, mins, secs)
}

// TotalSets counts sets across all exercise-instances of one workout.
func TotalSets(exercises []ProjectedInstance) int {
	total := 0
	for _, instance := range exercises {
		total += len(instance.Sets)
	}
	return total
}

// TotalVolume sums weight x reps over every set where both are present and
// the weight is positive. The unit reported is the unit of the last set
// that contributed a nonzero product, in iteration order; if nothing
// contributes the volume is 0 and the unit defaults to lbs.
func TotalVolume(exercises []ProjectedInstance) VolumeResult {
	result := VolumeResult{Unit: domain.DefaultWeightUnit}
	for _, instance := range exercises {
		for _, set := range instance.Sets {
			if set.Weight == nil || *set.Weight <= 0 || set.Reps <= 0 {
				continue
			}
			if set.WeightUnit.IsValid() {
				result.Unit = set.WeightUnit
			} else {
				result.Unit = domain.DefaultWeightUnit
			}
			result.Volume += *set.Weight * float64(set.Reps)
		}
	}
	return result
}

// ExerciseVolume sums weight x reps for one exercise-instance; absent
// weights count as zero. The displayed unit is taken from the first set,
// defaulting to lbs.
func ExerciseVolume(sets []domain.WorkoutSet) VolumeResult {
	result := VolumeResult{Unit: domain.DefaultWeightUnit}
	if len(sets) > 0 && sets[0].WeightUnit.IsValid() {
		result.Unit = sets[0].WeightUnit
	}
	for _, set := range sets {
		if set.Weight == nil {
			continue
		}
		result.Volume += *set.Weight * float64(set.Reps)
	}
	return result
}

// TotalDuration sums durations across workouts.
func TotalDuration(workouts []WorkoutView) int {
	total := 0
	for _, w := range workouts {
		total += w.Duration
	}
	return total
}

// AverageDuration is the mean workout duration rounded to the nearest
// whole second, 0 when no workouts exist.
func AverageDuration(workouts []WorkoutView) int {
	if len(workouts) == 0 {
		return 0
	}
	return int(math.Round(float64(TotalDuration(workouts)) / float64(len(workouts))))
}
