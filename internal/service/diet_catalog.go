package service

import "mindmate/internal/domain"

// dietPlanKey selecciona un plan por banda de BMI y estado mental
// (en minúsculas).
type dietPlanKey struct {
	band  string
	stage string
}

var dietPlans = map[dietPlanKey]domain.DietPlan{
	{domain.BMIBandUnderweight, "normal"}: {
		Title: "Weight Gain Plan - Balanced Mind",
		Meals: []domain.Meal{
			{
				Name:        "Breakfast",
				Description: "Oatmeal with nuts, banana, and protein shake",
				ImageURL:    "https://images.unsplash.com/photo-1517673132405-a56a62b18caf?ixlib=rb-4.0.3",
				Calories:    "600-700",
			},
			{
				Name:        "Lunch",
				Description: "Grilled chicken with brown rice and avocado",
				ImageURL:    "https://images.unsplash.com/photo-1598515214211-89d3c73ae83b?ixlib=rb-4.0.3",
				Calories:    "700-800",
			},
			{
				Name:        "Dinner",
				Description: "Salmon with sweet potato and vegetables",
				ImageURL:    "https://images.unsplash.com/photo-1467003909585-2f8a72700288?ixlib=rb-4.0.3",
				Calories:    "600-700",
			},
		},
	},
	{domain.BMIBandUnderweight, "anxiety"}: {
		Title: "Calming Weight Gain Plan",
		Meals: []domain.Meal{
			{
				Name:        "Breakfast",
				Description: "Chamomile tea, whole grain toast with almond butter",
				ImageURL:    "https://images.unsplash.com/photo-1544787219-7f47ccb76574?ixlib=rb-4.0.3",
				Calories:    "500-600",
			},
			{
				Name:        "Lunch",
				Description: "Turkey wrap with avocado and calming herbs",
				ImageURL:    "https://images.unsplash.com/photo-1541014741259-de529411b96a?ixlib=rb-4.0.3",
				Calories:    "600-700",
			},
			{
				Name:        "Dinner",
				Description: "Magnesium-rich fish with quinoa and vegetables",
				ImageURL:    "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?ixlib=rb-4.0.3",
				Calories:    "600-700",
			},
		},
	},
	{domain.BMIBandNormal, "normal"}: {
		Title: "Maintenance Plan - Balanced Mind",
		Meals: []domain.Meal{
			{
				Name:        "Breakfast",
				Description: "Greek yogurt parfait with berries and granola",
				ImageURL:    "https://images.unsplash.com/photo-1488477181946-6428a0291777?ixlib=rb-4.0.3",
				Calories:    "400-500",
			},
			{
				Name:        "Lunch",
				Description: "Mediterranean salad with grilled chicken",
				ImageURL:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?ixlib=rb-4.0.3",
				Calories:    "500-600",
			},
			{
				Name:        "Dinner",
				Description: "Stir-fried tofu with vegetables and brown rice",
				ImageURL:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?ixlib=rb-4.0.3",
				Calories:    "500-600",
			},
		},
	},
	{domain.BMIBandNormal, "depression"}: {
		Title: "Mood-Boosting Maintenance Plan",
		Meals: []domain.Meal{
			{
				Name:        "Breakfast",
				Description: "Omega-3 rich breakfast with eggs and smoked salmon",
				ImageURL:    "https://images.unsplash.com/photo-1510693206972-df098062cb71?ixlib=rb-4.0.3",
				Calories:    "400-500",
			},
			{
				Name:        "Lunch",
				Description: "Quinoa bowl with colorful vegetables and lean protein",
				ImageURL:    "https://images.unsplash.com/photo-1505576399279-565b52d4ac71?ixlib=rb-4.0.3",
				Calories:    "500-600",
			},
			{
				Name:        "Dinner",
				Description: "Grilled fish with sweet potato and green vegetables",
				ImageURL:    "https://images.unsplash.com/photo-1467003909585-2f8a72700288?ixlib=rb-4.0.3",
				Calories:    "500-600",
			},
		},
	},
	{domain.BMIBandOverweight, "normal"}: {
		Title: "Healthy Weight Loss Plan",
		Meals: []domain.Meal{
			{
				Name:        "Breakfast",
				Description: "Protein smoothie with spinach and berries",
				ImageURL:    "https://images.unsplash.com/photo-1502741224143-90386d7f8c82?ixlib=rb-4.0.3",
				Calories:    "300-400",
			},
			{
				Name:        "Lunch",
				Description: "Grilled chicken salad with light dressing",
				ImageURL:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?ixlib=rb-4.0.3",
				Calories:    "400-500",
			},
			{
				Name:        "Dinner",
				Description: "Baked fish with steamed vegetables",
				ImageURL:    "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?ixlib=rb-4.0.3",
				Calories:    "400-500",
			},
		},
	},
	{domain.BMIBandOverweight, "anxiety"}: {
		Title: "Calming Weight Loss Plan",
		Meals: []domain.Meal{
			{
				Name:        "Breakfast",
				Description: "Green tea with oatmeal and chia seeds",
				ImageURL:    "https://images.unsplash.com/photo-1517673132405-a56a62b18caf?ixlib=rb-4.0.3",
				Calories:    "300-400",
			},
			{
				Name:        "Lunch",
				Description: "Tuna salad with whole grain crackers",
				ImageURL:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?ixlib=rb-4.0.3",
				Calories:    "400-500",
			},
			{
				Name:        "Dinner",
				Description: "Lean turkey with roasted vegetables",
				ImageURL:    "https://images.unsplash.com/photo-1467003909585-2f8a72700288?ixlib=rb-4.0.3",
				Calories:    "400-500",
			},
		},
	},
}

// lookupDietPlan resuelve el plan para la combinación banda+estado. Si la
// etapa no tiene plan propio se cae al plan base de la banda.
func lookupDietPlan(band, stage string) (domain.DietPlan, bool) {
	if plan, ok := dietPlans[dietPlanKey{band, stage}]; ok {
		return plan, true
	}
	plan, ok := dietPlans[dietPlanKey{band, "normal"}]
	return plan, ok
}
