package domain

type Meal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Calories    string `json:"calories"` // rango, ej "500-600"
}

// DietPlan es un plan estático seleccionado por banda de BMI y etapa mental.
type DietPlan struct {
	Title string `json:"title"`
	Meals []Meal `json:"meals"`
}
