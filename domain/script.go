// Package domain holds the fixed tables and detectors that the pipeline
// stages consult: script/language detection, per-domain act lists,
// classifier corpora, official source registries, and text-cleaning rules.
package domain

import "unicode"

// Language is a two-letter (or script-qualified) language tag.
type Language string

// Script names a detected writing system.
type Script string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"

	ScriptLatin      Script = "latin"
	ScriptDevanagari Script = "devanagari"
	ScriptTamil      Script = "tamil"
	ScriptTelugu     Script = "telugu"
	ScriptBengali    Script = "bengali"
	ScriptGujarati   Script = "gujarati"
	ScriptKannada    Script = "kannada"
	ScriptMalayalam  Script = "malayalam"
	ScriptGurmukhi   Script = "gurmukhi"
	ScriptOdia       Script = "odia"
	ScriptArabic     Script = "arabic"
	ScriptHan        Script = "han"
	ScriptKana       Script = "kana"
	ScriptHangul     Script = "hangul"
	ScriptThai       Script = "thai"
	ScriptCyrillic   Script = "cyrillic"
)

// scriptTable maps each non-Latin script we detect to its Unicode range
// table and the language it implies when it dominates the query.
var scriptTable = []struct {
	script   Script
	tables   []*unicode.RangeTable
	language Language
}{
	{ScriptDevanagari, []*unicode.RangeTable{unicode.Devanagari}, LanguageHindi},
	{ScriptTamil, []*unicode.RangeTable{unicode.Tamil}, Language("ta")},
	{ScriptTelugu, []*unicode.RangeTable{unicode.Telugu}, Language("te")},
	{ScriptBengali, []*unicode.RangeTable{unicode.Bengali}, Language("bn")},
	{ScriptGujarati, []*unicode.RangeTable{unicode.Gujarati}, Language("gu")},
	{ScriptKannada, []*unicode.RangeTable{unicode.Kannada}, Language("kn")},
	{ScriptMalayalam, []*unicode.RangeTable{unicode.Malayalam}, Language("ml")},
	{ScriptGurmukhi, []*unicode.RangeTable{unicode.Gurmukhi}, Language("pa")},
	{ScriptOdia, []*unicode.RangeTable{unicode.Oriya}, Language("or")},
	{ScriptArabic, []*unicode.RangeTable{unicode.Arabic}, Language("ur")},
	{ScriptHan, []*unicode.RangeTable{unicode.Han}, Language("zh")},
	{ScriptKana, []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}, Language("ja")},
	{ScriptHangul, []*unicode.RangeTable{unicode.Hangul}, Language("ko")},
	{ScriptThai, []*unicode.RangeTable{unicode.Thai}, Language("th")},
	{ScriptCyrillic, []*unicode.RangeTable{unicode.Cyrillic}, Language("ru")},
}

// DetectScriptLanguage implements §4.1.1: tally Latin letters against each
// non-Latin script's code-point count; if the largest non-Latin script
// exceeds 30% of the Latin tally, its language wins, else English.
func DetectScriptLanguage(text string) (Script, Language) {
	latin := 0
	counts := make(map[Script]int, len(scriptTable))

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Latin, r) && unicode.IsLetter(r):
			latin++
		default:
			for _, entry := range scriptTable {
				if unicode.In(r, entry.tables...) {
					counts[entry.script]++
					break
				}
			}
		}
	}

	var best Script
	bestCount := 0
	for _, entry := range scriptTable {
		if c := counts[entry.script]; c > bestCount {
			bestCount = c
			best = entry.script
		}
	}

	if best == "" || float64(bestCount) <= 0.3*float64(latin) {
		return ScriptLatin, LanguageEnglish
	}

	for _, entry := range scriptTable {
		if entry.script == best {
			return best, entry.language
		}
	}
	return ScriptLatin, LanguageEnglish
}
