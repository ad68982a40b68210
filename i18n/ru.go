package i18n

var RU = Messages{
	"document_not_open":      "Документ %s не открыт",
	"unsupported_locale":     "Язык %s не поддерживается",
	"unknown_fold_direction": "Неизвестное направление сворачивания %s, ожидается up или down",
	"invalid_config":         "Некорректные настройки: %s",
}
