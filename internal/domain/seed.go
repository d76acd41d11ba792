package domain

// Palette holds the list colors assigned round-robin by list count.
var Palette = []string{
	"#579dff", // blue
	"#4bce97", // green
	"#f5cd47", // yellow
	"#fea362", // orange
	"#f87168", // red
	"#9f8fef", // purple
	"#e774bb", // pink
	"#60c6d2", // teal
}

// PaletteColor returns the color for the n-th list, wrapping around.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// Seed returns the starter board used when nothing is persisted. Card c3 is
// deliberately present in both list-doing and the inbox; loaders sanitize it.
func Seed() Board {
	return Board{
		Title: "Product Board",
		Cards: map[string]Card{
			"c1": {ID: "c1", Title: "Review marketing proposal"},
			"c2": {ID: "c2", Title: "Update README with new workflow"},
			"c3": {ID: "c3", Title: "Respond to customer inquiry"},
			"c4": {ID: "c4", Title: "Fix bug in the navigation dock"},
			"c5": {ID: "c5", Title: "Prepare for the team meeting"},
			"c6": {ID: "c6", Title: "Implement dark mode for inbox"},
			"c7": {ID: "c7", Title: "Research dnd-kit for drag and drop"},
			"c8": {ID: "c8", Title: "Create pixel-perfect UI states"},
		},
		Lists: map[string]*List{
			"list-todo": {
				ID:      "list-todo",
				Title:   "Today",
				CardIDs: []string{"c1", "c2"},
				Color:   Palette[0],
			},
			"list-doing": {
				ID:      "list-doing",
				Title:   "This Week",
				CardIDs: []string{"c3", "c4", "c5"},
				Color:   Palette[1],
			},
			"list-done": {
				ID:      "list-done",
				Title:   "Later",
				CardIDs: []string{"c6"},
				Color:   Palette[2],
			},
		},
		ListOrder: []string{"list-todo", "list-doing", "list-done"},
		InboxIDs:  []string{"c7", "c8", "c3"},
	}
}
