package models

// Recipe is a dish made from a set of products.
type Recipe struct {
	ID              int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	Description     string          `json:"description" gorm:"type:text;not null" validate:"required"`
	Vegan           bool            `json:"vegan" gorm:"not null"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel" gorm:"type:varchar(16);not null" validate:"required,oneof=EASY MEDIUM HARD"`
	Rating          *int64          `json:"rating"` // nil means not rated
	Image           []byte          `json:"image,omitempty"`
	Products        []Product       `json:"products,omitempty" gorm:"many2many:products_recipes"`
}

// ProductIDs returns the ids of the associated products.
func (r *Recipe) ProductIDs() []int64 {
	ids := make([]int64, 0, len(r.Products))
	for _, p := range r.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (r *Recipe) GetID() int64 {
	return r.ID
}
