package models

// ProductRecipe is a row of the join relation shared by Product.Recipes and
// Recipe.Products. Both sides read and write this one table.
type ProductRecipe struct {
	ProductID int64 `gorm:"primaryKey;autoIncrement:false"`
	RecipeID  int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (ProductRecipe) TableName() string {
	return "products_recipes"
}
