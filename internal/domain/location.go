package domain

// Location координаты места рождения, передаются в астро-движок как есть
// Диапазоны не проверяются - движок сам отвергает бессмысленные координаты
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
