package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "format" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "version_change":
			return "バージョンが変更されています"
		case "unsupported_format":
			return "未対応のフォーマットです"
		case "empty_name":
			return "名前が空です"
		case "too_many_values":
			return "レコードに複数の値があります"
		case "no_values":
			return "値または合計フィールドがありません"
		case "bad_char":
			return "不正な文字です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "unknown_key":
			return "未知のキーです"
		case "too_big":
			return "ペイロードが大きすぎます"
		}
	default: // "en"
		switch code {
		case "version_change":
			return "version change"
		case "unsupported_format":
			return "unsupported format"
		case "empty_name":
			return "empty name"
		case "too_many_values":
			return "more than one value in the record"
		case "no_values":
			return "no value or sum field found"
		case "bad_char":
			return "invalid char"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "unknown_key":
			return "unknown key"
		case "too_big":
			return "payload too big"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
