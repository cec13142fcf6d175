package models

// Category is the closed set of labels a transaction or plan can carry.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategorySalary        Category = "Salary"
	CategoryInvestment    Category = "Investment"
	CategoryHousing       Category = "Housing"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
	CategoryBills, CategoryHealth, CategorySalary, CategoryInvestment,
	CategoryHousing, CategoryEducation, CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
