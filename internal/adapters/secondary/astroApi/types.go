package astroApi

// Subject представляет анкету субъекта гадания для API запроса
// Форматы birthday/birth_time совпадают с domain.BirthInfo (YYYY/MM/DD, HH:MM)
type Subject struct {
	Name       string `json:"name"`
	Birthday   string `json:"birthday"`
	BirthTime  string `json:"birth_time"`
	Birthplace string `json:"birthplace"`
	Worries    string `json:"worries,omitempty"`
}

// GeoPoint координаты места рождения
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReadingOptions опции генерации гадания
type ReadingOptions struct {
	HouseSystem string `json:"house_system"`       // "P" для Плацидуса
	ZodiacType  string `json:"zodiac_type"`        // "Tropic" для тропического
	Language    string `json:"language,omitempty"` // "ja"
}

// ReadingRequest представляет запрос на западное астрологическое гадание
type ReadingRequest struct {
	Subject  Subject        `json:"subject"`
	Location GeoPoint       `json:"location"`
	Options  ReadingOptions `json:"options"`
}

// ReadingResponse представляет ответ API
type ReadingResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Reading string `json:"reading,omitempty"`
	RawJSON string `json:"-"` // Оригинальный JSON ответ для логов
}

// GeocodeRequest запрос геокодинга места рождения
type GeocodeRequest struct {
	Place string `json:"place"`
}

// GeocodeResponse ответ геокодинга
type GeocodeResponse struct {
	Status    string  `json:"status"`
	Code      int     `json:"code,omitempty"`
	Message   string  `json:"message,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RawJSON   string  `json:"-"`
}
