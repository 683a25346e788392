package domain

import (
	"fmt"
	"regexp"
	"time"
)

const (
	birthdayLayout  = "2006/01/02"
	birthTimeLayout = "15:04"

	// Дефолты для supplement: имя и дата рождения никогда не дополняются
	DefaultBirthTime  = "00:00"
	DefaultBirthplace = "Tokyo"
)

// time.Parse принимает и не дополненные нулями значения ("1999/7/2"),
// поэтому формат фиксируем регуляркой, а календарную корректность - парсингом
var (
	birthdayPattern  = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	birthTimePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// BirthInfo анкета для гадания, заполняется по одному полю за реплику диалога
type BirthInfo struct {
	Name       string `json:"name" db:"name"`
	Birthday   string `json:"birthday" db:"birthday"`
	BirthTime  string `json:"birth_time" db:"birth_time"`
	Birthplace string `json:"birthplace" db:"birthplace"`
	Worries    string `json:"worries" db:"worries"`
}

// InitialBirthInfo возвращает анкету со всеми полями-пустыми строками
func InitialBirthInfo() BirthInfo {
	return BirthInfo{
		Name:       "",
		Birthday:   "",
		BirthTime:  "",
		Birthplace: "",
		Worries:    "",
	}
}

// ValidateBirthday проверяет формат YYYY/MM/DD (с ведущими нулями) и
// календарную корректность даты. Пустая строка проходит без проверки.
// Возвращает значение без изменений
func ValidateBirthday(v string) (string, error) {
	if v == "" {
		return v, nil
	}
	if !birthdayPattern.MatchString(v) {
		return "", &FormatError{Field: "birthday", Value: v, Layout: "YYYY/MM/DD"}
	}
	if _, err := time.Parse(birthdayLayout, v); err != nil {
		return "", &FormatError{Field: "birthday", Value: v, Layout: "YYYY/MM/DD"}
	}
	return v, nil
}

// ValidateBirthTime проверяет формат HH:MM (00-23 / 00-59).
// Пустая строка проходит без проверки. Возвращает значение без изменений
func ValidateBirthTime(v string) (string, error) {
	if v == "" {
		return v, nil
	}
	if !birthTimePattern.MatchString(v) {
		return "", &FormatError{Field: "birth_time", Value: v, Layout: "HH:MM"}
	}
	if _, err := time.Parse(birthTimeLayout, v); err != nil {
		return "", &FormatError{Field: "birth_time", Value: v, Layout: "HH:MM"}
	}
	return v, nil
}

// SupplementByDefault дополняет пустые birth_time/birthplace дефолтами,
// дефолт для worries - пустая строка, поэтому поле не трогаем.
// Проверка только на пустоту - непустое, но кривое по формату значение
// остаётся как есть и позже провалит SatisfiedAll. Идемпотентна
func (b *BirthInfo) SupplementByDefault() {
	if b.BirthTime == "" {
		b.BirthTime = DefaultBirthTime
	}
	if b.Birthplace == "" {
		b.Birthplace = DefaultBirthplace
	}
}

// SatisfiedAll проверяет готовность анкеты к гаданию: оба валидатора проходят
// и все обязательные поля заполнены. Ошибка формата превращается в false,
// вызывающий никогда не видит error
func (b *BirthInfo) SatisfiedAll() bool {
	if _, err := ValidateBirthday(b.Birthday); err != nil {
		return false
	}
	if _, err := ValidateBirthTime(b.BirthTime); err != nil {
		return false
	}
	return b.Name != "" && b.Birthday != "" && b.BirthTime != "" && b.Birthplace != ""
}

func (b BirthInfo) String() string {
	return fmt.Sprintf("%s (%s %s %s), worries: %s", b.Name, b.Birthday, b.BirthTime, b.Birthplace, b.Worries)
}
