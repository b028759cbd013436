package categories

import "github.com/cleared-dev/tally/internal/model"

// defaultTable is the closed set of categories, in display order.
func defaultTable() []model.CategoryInfo {
	return []model.CategoryInfo{
		{ID: model.CategoryFood, Name: "Food", Icon: "🍕", Color: "hsl(25 95% 53%)", Applicability: model.AppliesToExpense},
		{ID: model.CategoryTransport, Name: "Transport", Icon: "🚗", Color: "hsl(217 91% 60%)", Applicability: model.AppliesToExpense},
		{ID: model.CategoryShopping, Name: "Shopping", Icon: "🛍️", Color: "hsl(316 73% 52%)", Applicability: model.AppliesToExpense},
		{ID: model.CategoryBills, Name: "Bills", Icon: "💡", Color: "hsl(12 76% 61%)", Applicability: model.AppliesToExpense},
		{ID: model.CategoryHealth, Name: "Health", Icon: "🏥", Color: "hsl(142 71% 45%)", Applicability: model.AppliesToExpense},
		{ID: model.CategoryFees, Name: "Fees", Icon: "💳", Color: "hsl(45 93% 47%)", Applicability: model.AppliesToExpense},
		{ID: model.CategoryEntertainment, Name: "Entertainment", Icon: "🎬", Color: "hsl(280 100% 70%)", Applicability: model.AppliesToExpense},
		{ID: model.CategorySalary, Name: "Salary", Icon: "💰", Color: "hsl(120 100% 35%)", Applicability: model.AppliesToIncome},
		{ID: model.CategoryFreelance, Name: "Freelance", Icon: "💻", Color: "hsl(180 100% 40%)", Applicability: model.AppliesToIncome},
		{ID: model.CategoryInvestment, Name: "Investment", Icon: "📈", Color: "hsl(60 100% 50%)", Applicability: model.AppliesToIncome},
		{ID: model.CategoryOthers, Name: "Others", Icon: "📦", Color: "hsl(210 11% 71%)", Applicability: model.AppliesToBoth},
	}
}
