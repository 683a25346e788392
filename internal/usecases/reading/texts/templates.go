package texts

import "fmt"

const (
	Start = "🔮 Привет! Я гадатель по западной астрологии.\n" +
		"Отправь /reading, чтобы начать гадание."

	Help = "🔮 Команды:\n" +
		"/reading - начать новое гадание\n" +
		"/help - эта справка\n\n" +
		"Во время анкеты можно отправить «skip», чтобы заполнить " +
		"оставшиеся поля значениями по умолчанию."

	UnknownCommand = "❓ Неизвестная команда: /%s\nИспользуй /help"

	ReadingAlreadyOpen = "Анкета уже открыта, продолжим.\n"

	NoActiveReading = "Сейчас нет открытой анкеты.\n" +
		"Отправь /reading, чтобы начать гадание."

	AskName       = "✨ Как тебя зовут?"
	AskBirthday   = "📅 Дата рождения? Формат: ГГГГ/ММ/ДД, например 1999/07/25"
	AskBirthTime  = "🕐 Время рождения? Формат: ЧЧ:ММ, например 12:30\n(можно «skip», если не знаешь)"
	AskBirthplace = "📍 Место рождения? Например: Tokyo\n(можно «skip»)"
	AskWorries    = "💭 Что тебя беспокоит? О чём спросить звёзды?\n(можно «skip»)"

	BadBirthday = "❌ Не похоже на дату.\n" +
		"Нужен формат ГГГГ/ММ/ДД с ведущими нулями, например 1999/07/25"

	BadBirthTime = "❌ Не похоже на время.\n" +
		"Нужен формат ЧЧ:ММ, например 09:05"

	SkipNotAllowedYet = "Имя и дату рождения пропустить нельзя - без них гадать не по чему."

	IntakeDone = "✅ Анкета заполнена!\n🔮 Читаю звёзды, это займёт немного времени..."

	ReadingFallback = "Звёзды сегодня молчат... Попробуй спросить ещё раз позже."

	IntakeSaveError = "❌ Не получилось сохранить ответ, попробуй ещё раз"

	VoiceDeliverError = "⚠️ Гадание готово, но голос не прочитался. Текст выше."
)

// FormatUnknownCommand форматирует сообщение о неизвестной команде
func FormatUnknownCommand(command string) string {
	return fmt.Sprintf(UnknownCommand, command)
}

// FormatReading форматирует готовый текст гадания для отправки в чат
func FormatReading(name, reading string) string {
	return fmt.Sprintf("🔮 %s, вот что говорят звёзды:\n\n%s", name, reading)
}
