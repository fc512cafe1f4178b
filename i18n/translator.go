package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "validation").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_literal":
			return "リテラル値が一致しません"
		case "invalid_enum_value":
			return "列挙値が不正です"
		case "invalid_union":
			return "どのユニオン候補にも一致しません"
		case "invalid_union_discriminator":
			return "判別子が不正です"
		case "invalid_string":
			return "文字列の形式が不正です"
		case "invalid_date":
			return "日付が不正です"
		case "invalid_intersection_types":
			return "交差型の結果をマージできません"
		case "not_multiple_of":
			return "倍数ではありません"
		case "not_finite":
			return "有限数ではありません"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "unrecognized_keys":
			return "未知のキーです"
		case "parse_error":
			return "解析エラー"
		case "custom":
			return "検証に失敗しました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_literal":
			return "invalid literal value"
		case "invalid_enum_value":
			return "invalid enum value"
		case "invalid_union":
			return "input matched no union member"
		case "invalid_union_discriminator":
			return "invalid discriminator value"
		case "invalid_string":
			return "invalid string"
		case "invalid_date":
			return "invalid date"
		case "invalid_intersection_types":
			return "intersection results could not be merged"
		case "not_multiple_of":
			return "not a multiple of the expected step"
		case "not_finite":
			return "not a finite number"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "unrecognized_keys":
			return "unrecognized keys"
		case "parse_error":
			return "parse error"
		case "custom":
			return "validation failed"
		}
	}
	return code
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
