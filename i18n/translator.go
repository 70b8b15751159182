package i18n

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "allowed", or "min").
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
			if e, o := data["expected"], data["observed"]; e != "" && o != "" {
				return e + " が必要ですが " + o + " でした"
			}
			return "型が不正です"
		case "null_not_allowed":
			return "null は許可されていません"
		case "invalid_enum":
			if a := data["allowed"]; a != "" {
				return "許可されていない値です (許可: " + a + ")"
			}
			return "許可されていない値です"
		case "too_small":
			if m := data["min"]; m != "" {
				return "最小値 " + m + " を下回っています"
			}
			return "小さすぎます"
		case "too_big":
			if m := data["max"]; m != "" {
				return "最大値 " + m + " を超えています"
			}
			return "大きすぎます"
		case "uniqueness":
			if f := data["first"]; f != "" {
				return "値が重複しています (初出: 行 " + f + ")"
			}
			return "値が重複しています"
		case "missing_column":
			return "宣言された列が見つかりません"
		case "unknown_column":
			return "スキーマにない列です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if e, o := data["expected"], data["observed"]; e != "" && o != "" {
				return "expected " + e + ", got " + o
			}
			return "invalid type"
		case "null_not_allowed":
			return "null value in non-nullable column"
		case "invalid_enum":
			if a := data["allowed"]; a != "" {
				return "value must be one of " + a
			}
			return "value not in allowed set"
		case "too_small":
			if m := data["min"]; m != "" {
				return "value below minimum " + m
			}
			return "too small"
		case "too_big":
			if m := data["max"]; m != "" {
				return "value above maximum " + m
			}
			return "too big"
		case "uniqueness":
			if f := data["first"]; f != "" {
				return "duplicate value, first seen at row " + f
			}
			return "duplicate value"
		case "missing_column":
			return "declared column missing from batch"
		case "unknown_column":
			return "column not declared in schema"
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
