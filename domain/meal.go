package domain

import "github.com/shopspring/decimal"

// MealFlags is one day's meal selection.
type MealFlags struct {
	Breakfast bool `json:"breakfast_taken"`
	Lunch     bool `json:"lunch_taken"`
	Dinner    bool `json:"dinner_taken"`
}

func (f MealFlags) Any() bool {
	return f.Breakfast || f.Lunch || f.Dinner
}

func (f MealFlags) Count() int {
	n := 0
	if f.Breakfast {
		n++
	}
	if f.Lunch {
		n++
	}
	if f.Dinner {
		n++
	}
	return n
}

// MealRates is the per-meal rate card used for billing math.
type MealRates struct {
	Breakfast decimal.Decimal
	Lunch     decimal.Decimal
	Dinner    decimal.Decimal
}

// Amount prices one day's selection.
func (r MealRates) Amount(f MealFlags) decimal.Decimal {
	total := decimal.Zero
	if f.Breakfast {
		total = total.Add(r.Breakfast)
	}
	if f.Lunch {
		total = total.Add(r.Lunch)
	}
	if f.Dinner {
		total = total.Add(r.Dinner)
	}
	return total
}

// Delta is the signed price difference of changing a day's selection from
// old to new. Negative means money owed back.
func (r MealRates) Delta(old, new MealFlags) decimal.Decimal {
	return r.Amount(new).Sub(r.Amount(old))
}

// MealCountDelta is the signed meal-count difference of the same change.
func MealCountDelta(old, new MealFlags) int {
	return new.Count() - old.Count()
}
