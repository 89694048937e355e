package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "min" or "format").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です ({expected} を期待)"
		case "required":
			msg = "この項目は必須です。"
		case "too_small":
			msg = "{min} 以上である必要があります"
		case "too_big":
			msg = "{max} 以下である必要があります"
		case "too_short":
			msg = "{min} 文字以上である必要があります"
		case "too_long":
			msg = "{max} 文字以下である必要があります"
		case "pattern":
			msg = "パターン {pattern} に一致しません"
		case "invalid_format":
			msg = "{format} の形式が不正です"
		case "invalid_enum":
			msg = "{expected} のいずれかである必要があります"
		case "invalid_literal":
			msg = "{expected} である必要があります"
		case "invalid_date":
			msg = "日付が不正です"
		case "not_integer":
			msg = "整数である必要があります"
		case "not_a_number":
			msg = "数値ではないようです"
		case "not_a_bigint":
			msg = "bigint ではないようです"
		case "not_a_boolean":
			msg = "真偽値ではないようです ({expected})"
		case "invalid_union":
			msg = "いずれの候補にも一致しません"
		case "parse_error":
			msg = "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "Expected {expected}, received {received}"
		case "required":
			msg = "This field is required."
		case "too_small":
			msg = "Value must be greater than or equal to {min}"
		case "too_big":
			msg = "Value must be less than or equal to {max}"
		case "too_short":
			msg = "Must contain at least {min} element(s)"
		case "too_long":
			msg = "Must contain at most {max} element(s)"
		case "pattern":
			msg = "Value doesn't match pattern {pattern}"
		case "invalid_format":
			msg = "Invalid {format}"
		case "invalid_enum":
			msg = "Invalid enum value. Expected {expected}"
		case "invalid_literal":
			msg = "Invalid literal value, expected {expected}"
		case "invalid_date":
			msg = "Invalid date"
		case "not_integer":
			msg = "Expected integer, received float"
		case "not_a_number":
			msg = "Value doesn't appear to be a number!"
		case "not_a_bigint":
			msg = "Value doesn't appear to be a bigint!"
		case "not_a_boolean":
			msg = "Value doesn't appear to be a boolean! (expected {expected})"
		case "invalid_union":
			msg = "Invalid input"
		case "parse_error":
			msg = "parse error"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand substitutes {name} placeholders with entries from data. Unknown
// placeholders are left untouched.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
