package i18n

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "backend" or "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if p := data["pointer"]; p != "" {
		msg += " (" + p + ")"
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			return "型が一致しません"
		case "read_error":
			return "読み込みエラー"
		case "parse_error":
			return "解析エラー"
		case "unknown_backend":
			return "未登録のバックエンドです"
		case "duplicate_key":
			return "キーが重複しています"
		case "truncated":
			return "サイズ上限を超えました"
		case "equal":
			return "等しい"
		case "not_equal":
			return "等しくない"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			return "type mismatch"
		case "read_error":
			return "read error"
		case "parse_error":
			return "parse error"
		case "unknown_backend":
			return "unknown backend"
		case "duplicate_key":
			return "duplicate key"
		case "truncated":
			return "input too large"
		case "equal":
			return "equal"
		case "not_equal":
			return "not equal"
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
