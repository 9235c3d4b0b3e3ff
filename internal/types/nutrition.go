package types

import "math"

// Nutrition holds the four tracked macro values. Values accumulate unrounded;
// call Rounded once at the response boundary.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns the component-wise sum of n and other.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fats:     n.Fats + other.Fats,
	}
}

// Scale returns n multiplied by factor.
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fats:     n.Fats * factor,
	}
}

// Rounded returns n with every value rounded to two decimal places.
func (n Nutrition) Rounded() Nutrition {
	return Nutrition{
		Calories: round2(n.Calories),
		Protein:  round2(n.Protein),
		Carbs:    round2(n.Carbs),
		Fats:     round2(n.Fats),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
