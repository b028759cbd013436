package model

// Category identifies one of the predefined transaction categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"
	CategoryFees          Category = "fees"
	CategoryEntertainment Category = "entertainment"
	CategorySalary        Category = "salary"
	CategoryFreelance     Category = "freelance"
	CategoryInvestment    Category = "investment"
	CategoryOthers        Category = "others"
)

// Applicability says which transaction types a category may be used with.
type Applicability string

const (
	AppliesToIncome  Applicability = "income"
	AppliesToExpense Applicability = "expense"
	AppliesToBoth    Applicability = "both"
)

// CategoryInfo is the static display metadata for a category.
type CategoryInfo struct {
	ID            Category
	Name          string
	Icon          string
	Color         string
	Applicability Applicability
}

// Allows reports whether the category may be used for a transaction of type t.
func (c CategoryInfo) Allows(t TransactionType) bool {
	return c.Applicability == AppliesToBoth || string(c.Applicability) == string(t)
}

// CategoryChecker resolves category identifiers to their metadata.
type CategoryChecker interface {
	Lookup(id Category) (CategoryInfo, bool)
}
