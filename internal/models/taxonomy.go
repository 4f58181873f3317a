package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Categories — фиксированная рубрикация статей. Не хранится в БД.
var Categories = []Category{
	{ID: 1, Name: "Python"},
	{ID: 2, Name: "MongoDB"},
	{ID: 3, Name: "Redis"},
}

func CategoryName(id int) (string, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

func IsValidCategory(id int) bool {
	_, ok := CategoryName(id)
	return ok
}
