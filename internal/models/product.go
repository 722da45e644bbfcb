package models

// Product is an ingredient that can be used by many recipes.
type Product struct {
	ID      int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string   `json:"name" gorm:"type:varchar(255);not null;uniqueIndex" validate:"required,max=255"`
	Image   []byte   `json:"image,omitempty"`
	Recipes []Recipe `json:"recipes,omitempty" gorm:"many2many:products_recipes"`
}

// RecipeIDs returns the ids of the associated recipes.
func (p *Product) RecipeIDs() []int64 {
	ids := make([]int64, 0, len(p.Recipes))
	for _, r := range p.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func (p *Product) GetID() int64 {
	return p.ID
}
