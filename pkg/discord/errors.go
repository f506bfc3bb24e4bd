package discord

import "eventpass/internal/domain"

// ErrorKey maps an error to the i18n key of its user-facing message.
func ErrorKey(err error) string {
	if err == nil {
		return ""
	}
	return "errors." + domain.Code(err)
}
