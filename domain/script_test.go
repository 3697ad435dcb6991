package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectScriptLanguage(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantScript Script
		wantLang   Language
	}{
		{"pure english", "what is the punishment for murder", ScriptLatin, LanguageEnglish},
		{"pure hindi", "धारा 302 क्या है", ScriptDevanagari, LanguageHindi},
		{"empty string defaults to latin/english", "", ScriptLatin, LanguageEnglish},
		{"mostly english with a trailing hindi word stays english", "what is the punishment for murder under section 302 of the indian penal code में", ScriptLatin, LanguageEnglish},
		{"mostly hindi with a trailing english abbreviation is hindi", "धारा 302 के अंतर्गत हत्या के लिए क्या सजा है IPC", ScriptDevanagari, LanguageHindi},
		{"pure katakana is kana/japanese", "コンピューター", ScriptKana, Language("ja")},
		{"pure hiragana is kana/japanese", "ひらがな", ScriptKana, Language("ja")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotScript, gotLang := DetectScriptLanguage(tt.text)
			assert.Equal(t, tt.wantScript, gotScript)
			assert.Equal(t, tt.wantLang, gotLang)
		})
	}
}
