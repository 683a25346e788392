package domain

// AstrologyResult результат работы астро-движка
// IsOK=false с непустым Value структурно допустимо (fallback-текст при ошибке),
// интерпретация - на стороне вызывающего
type AstrologyResult struct {
	Value string `json:"value"`
	IsOK  bool   `json:"is_ok"`
}
