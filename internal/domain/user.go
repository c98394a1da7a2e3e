package domain

import "time"

const (
	BMIBandUnderweight = "underweight"
	BMIBandNormal      = "normal"
	BMIBandOverweight  = "overweight"
)

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	DisplayName    string     `json:"display_name,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	BirthYear      int        `json:"birth_year,omitempty"`
	HeightCm       float64    `json:"height_cm,omitempty"`
	WeightKg       float64    `json:"weight_kg,omitempty"`
	SetupCompleted bool       `json:"setup_completed"`
	PasswordHash   string     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// BMI calcula el indice de masa corporal (kg/m^2). Devuelve 0 si faltan datos.
func (u *User) BMI() float64 {
	if u.HeightCm <= 0 || u.WeightKg <= 0 {
		return 0
	}
	meters := u.HeightCm / 100.0
	return u.WeightKg / (meters * meters)
}

// BMIBand clasifica el BMI en la banda usada por los planes de dieta.
// Cortes: <18.5 underweight, <25 normal, resto overweight.
func (u *User) BMIBand() string {
	bmi := u.BMI()
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return BMIBandUnderweight
	case bmi < 25:
		return BMIBandNormal
	default:
		return BMIBandOverweight
	}
}
