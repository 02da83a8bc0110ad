package serializer

import "github.com/mdouchement/itemservice/internal/model"

// Item serializes the render of an item.
func Item(m *model.Item) map[string]any {
	return map[string]any{
		"id":          m.ID,
		"name":        m.Name,
		"description": m.Description,
		"created_at":  m.CreatedAt.UTC(),
		"updated_at":  m.UpdatedAt.UTC(),
	}
}

// Items serializes the render of items.
func Items(m []*model.Item) []map[string]any {
	items := make([]map[string]any, len(m))
	for i, item := range m {
		items[i] = Item(item)
	}
	return items
}
