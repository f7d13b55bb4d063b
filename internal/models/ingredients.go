package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Ingredients is the ordered ingredient list of a recipe. It is persisted as a JSON
// array in a text column.
type Ingredients []string

// ParseIngredients converts the comma separated form input ("1/2 cup milk, 1 cup flour")
// into an ingredient list. Entries are trimmed and empty entries are dropped.
func ParseIngredients(raw string) Ingredients {
	parts := strings.Split(raw, ",")
	out := make(Ingredients, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// String renders the list back into its comma separated form.
func (i Ingredients) String() string {
	return strings.Join(i, ", ")
}

// Value implements the driver.Valuer interface
func (i Ingredients) Value() (driver.Value, error) {
	if len(i) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(i))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface. Rows written before the list was
// normalized hold the raw comma separated text and are parsed as such.
func (i *Ingredients) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*i = Ingredients{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("unsupported ingredients type %T", value)
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return fmt.Errorf("failed to decode ingredients: %w", err)
		}
		*i = Ingredients(list)
		return nil
	}
	*i = ParseIngredients(raw)
	return nil
}
