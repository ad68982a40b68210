package i18n

var EN = Messages{
	"document_not_open":      "Document %s is not open",
	"unsupported_locale":     "Unsupported locale %s",
	"unknown_fold_direction": "Unknown fold direction %s, expected up or down",
	"invalid_config":         "Invalid configuration: %s",
}
