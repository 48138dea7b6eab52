package content

import "github.com/tudoumono/pypuzzle/internal/models"

// DefaultCategories is the built-in category list used when the content
// source does not supply one.
func DefaultCategories() []models.Category {
	return []models.Category{
		{
			ID:          "variables",
			Title:       "Variables & Types",
			Description: "Create variables and learn the basic data types",
			Icon:        "Box",
			Color:       "bg-blue-500",
			Order:       1,
		},
		{
			ID:          "print-statements",
			Title:       "Print Statements",
			Description: "Show output on screen with print()",
			Icon:        "MessageSquare",
			Color:       "bg-green-500",
			Order:       2,
		},
		{
			ID:          "conditionals",
			Title:       "Conditionals",
			Description: "Branch with if/elif/else",
			Icon:        "GitBranch",
			Color:       "bg-purple-500",
			Order:       3,
		},
		{
			ID:          "loops",
			Title:       "Loops",
			Description: "Repeat with for and while",
			Icon:        "Repeat",
			Color:       "bg-orange-500",
			Order:       4,
		},
		{
			ID:          "functions",
			Title:       "Functions",
			Description: "Build reusable functions with def",
			Icon:        "Puzzle",
			Color:       "bg-pink-500",
			Order:       5,
		},
	}
}
