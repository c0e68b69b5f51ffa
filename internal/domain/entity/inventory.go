package entity

// InventoryItem одна позиция в холодильнике в том виде, в каком её вернул сервис
type InventoryItem struct {
	Name  string `json:"name"`  // название продукта
	Count int    `json:"count"` // количество, не меньше нуля
}

// CloneInventory возвращает независимую копию списка.
// Для nil возвращает пустой срез, чтобы наружу никогда не уходил nil.
func CloneInventory(items []InventoryItem) []InventoryItem {
	out := make([]InventoryItem, len(items))
	copy(out, items)
	return out
}

// TotalCount суммирует количество по всем позициям
func TotalCount(items []InventoryItem) int {
	total := 0
	for _, it := range items {
		total += it.Count
	}
	return total
}
