package i18n

var UK = Messages{
	"document_not_open":      "Документ %s не відкрито",
	"unsupported_locale":     "Мова %s не підтримується",
	"unknown_fold_direction": "Невідомий напрямок згортання %s, очікується up або down",
	"invalid_config":         "Некоректні налаштування: %s",
}
