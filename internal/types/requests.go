package types

// RecipeRequest is the create and edit payload for a recipe. Ingredients arrive as
// comma-separated text; Categories holds category ids.
type RecipeRequest struct {
	Name        string   `json:"name" form:"name" binding:"required,max=250"`
	Directions  string   `json:"directions" form:"directions" binding:"required"`
	Ingredients string   `json:"ingredients" form:"ingredients"`
	Servings    int      `json:"servings" form:"servings" binding:"omitempty,min=1"`
	PrepTime    string   `json:"prep_time" form:"prep_time" binding:"max=250"`
	CookTime    string   `json:"cook_time" form:"cook_time" binding:"max=250"`
	Public      *bool    `json:"public" form:"public"`
	Categories  []string `json:"categories" form:"categories"`
}

// SearchRequest carries the recipe search terms.
type SearchRequest struct {
	Terms string `json:"terms" form:"terms"`
}

// SavePlanRequest names the recipe for each of the seven slots of a plan.
type SavePlanRequest struct {
	Breakfast1 string `json:"breakfast1_recipe" form:"breakfast1_recipe" binding:"required"`
	Breakfast2 string `json:"breakfast2_recipe" form:"breakfast2_recipe" binding:"required"`
	Breakfast3 string `json:"breakfast3_recipe" form:"breakfast3_recipe" binding:"required"`
	Lunch1     string `json:"lunch1_recipe" form:"lunch1_recipe" binding:"required"`
	Lunch2     string `json:"lunch2_recipe" form:"lunch2_recipe" binding:"required"`
	Dinner1    string `json:"dinner1_recipe" form:"dinner1_recipe" binding:"required"`
	Dinner2    string `json:"dinner2_recipe" form:"dinner2_recipe" binding:"required"`
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username     string `json:"username" form:"username" binding:"required,max=150"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Password     string `json:"password" form:"password" binding:"required"`
	Confirmation string `json:"confirmation" form:"confirmation" binding:"required"`
}

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
