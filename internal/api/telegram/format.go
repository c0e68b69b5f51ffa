package telegram

import (
	"fmt"
	"strings"

	"smart-fridge/internal/domain/entity"
)

func formatNotification(n entity.NotificationState) string {
	if n.Intent == entity.IntentRemove {
		return fmt.Sprintf("📤 %s: достали из холодильника", n.Item)
	}
	return fmt.Sprintf("📥 %s: положили в холодильник", n.Item)
}

func formatInventory(items []entity.InventoryItem) string {
	if len(items) == 0 {
		return msgEmptyFridge
	}

	var sb strings.Builder
	sb.WriteString("📋 В холодильнике:\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "• %s — %d\n", it.Name, it.Count)
	}
	fmt.Fprintf(&sb, "\nВсего: %d", entity.TotalCount(items))
	return sb.String()
}

func formatRecipe(r *entity.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍳 %s\n", r.Name)

	if len(r.Ingredients) > 0 {
		sb.WriteString("\nИнгредиенты:\n")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&sb, "• %s\n", ing)
		}
	}

	if len(r.Steps) > 0 {
		sb.WriteString("\nШаги:\n")
		for i, step := range r.Steps {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
		}
	}

	if r.NutritionalNote != "" {
		fmt.Fprintf(&sb, "\n💡 %s", r.NutritionalNote)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// parseRecipeArgs разбирает "тип; диета, диета; кухня"
func parseRecipeArgs(args string) entity.RecipePreferences {
	parts := strings.Split(args, ";")
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	prefs := entity.RecipePreferences{
		MealType:     strings.TrimSpace(parts[0]),
		CuisineType:  strings.TrimSpace(parts[2]),
		DietaryNeeds: []string{},
	}
	for _, need := range strings.Split(parts[1], ",") {
		if need = strings.TrimSpace(need); need != "" {
			prefs.DietaryNeeds = append(prefs.DietaryNeeds, need)
		}
	}

	return prefs
}
