// Package i18n supplies localized diagnostic messages for Issue and
// CompileError codes, decoupled from the core so the core never imports a
// locale file directly.
package i18n

// Translator retrieves localized messages for Issue codes. data provides
// optional metadata to embed in the message (for example "min" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "additional_property":
			return "許可されていない追加プロパティです"
		case "unevaluated_property":
			return "未評価のプロパティです"
		case "additional_item":
			return "許可されていない追加要素です"
		case "unevaluated_item":
			return "未評価の要素です"
		case "too_small":
			return "値が小さすぎます"
		case "too_big":
			return "値が大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_const":
			return "定数値と一致しません"
		case "invalid_enum":
			return "列挙値のいずれにも一致しません"
		case "multiple_of":
			return "倍数条件を満たしません"
		case "uniqueness":
			return "要素が重複しています"
		case "contains":
			return "contains の件数条件を満たしません"
		case "all_of":
			return "allOf のすべてを満たしません"
		case "any_of":
			return "anyOf のいずれも満たしません"
		case "one_of":
			return "oneOf をちょうど1つだけ満たしません"
		case "not":
			return "not の対象を満たしてしまっています"
		case "if_then_else":
			return "if/then/else 条件を満たしません"
		case "dependent_required":
			return "依存する必須プロパティが不足しています"
		case "stack_overflow_guard":
			return "再帰の深さ制限を超えました"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "additional_property":
			return "additional property not allowed"
		case "unevaluated_property":
			return "unevaluated property not allowed"
		case "additional_item":
			return "additional item not allowed"
		case "unevaluated_item":
			return "unevaluated item not allowed"
		case "too_small":
			return "value too small"
		case "too_big":
			return "value too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "does not match pattern"
		case "invalid_const":
			return "does not equal const value"
		case "invalid_enum":
			return "not one of the enum values"
		case "multiple_of":
			return "not a multiple of the given value"
		case "uniqueness":
			return "duplicate element"
		case "contains":
			return "contains count out of bounds"
		case "all_of":
			return "does not satisfy every allOf branch"
		case "any_of":
			return "does not satisfy any anyOf branch"
		case "one_of":
			return "does not satisfy exactly one oneOf branch"
		case "not":
			return "satisfies the schema under not"
		case "if_then_else":
			return "does not satisfy the if/then/else condition"
		case "dependent_required":
			return "missing a dependent required property"
		case "stack_overflow_guard":
			return "maximum nesting depth exceeded"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
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
