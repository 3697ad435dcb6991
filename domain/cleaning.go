package domain

import (
	"regexp"
	"strings"
)

// amendmentPatterns strips legislative amendment/footnote annotations that
// survive PDF extraction, per §4.5.1 step 1.
var amendmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\.\s*Subs\.?\s*by\s*(Act\s*)?\d+\s*of\s*\d{4},?\s*s\.?\s*\d+[^.]*\.?`),
	regexp.MustCompile(`(?i)\d+\.\s*Ins\.?\s*by\s*(Act\s*)?\d+\s*of\s*\d{4}[^.]*\.?`),
	regexp.MustCompile(`(?i)\d+\.\s*Omitted\s*by\s*(Act\s*)?\d+\s*of\s*\d{4}[^.]*\.?`),
	regexp.MustCompile(`(?i)\(w\.?e\.?f\.?\s*\d{1,2}-\d{1,2}-\d{4}\)`),
	regexp.MustCompile(`(?i)\[w\.?e\.?f\.?\s*\d{1,2}-\d{1,2}-\d{4}\]`),
	regexp.MustCompile(`(?i)w\.?e\.?f\.?\s*\d{1,2}-\d{1,2}-\d{4}`),
	regexp.MustCompile(`\d+\[`),
	regexp.MustCompile(`\]\d+`),
	regexp.MustCompile(`\|\|`),
	regexp.MustCompile(`(?i)ibid\.,?\s*for\s*[-—]`),
	regexp.MustCompile(`(?i)for\s*[-—]\s*the\s+`),
}

// ocrFix is a single split-word repair rule, written with the replacement's
// own casing. Most patterns are case-insensitive; the rest are
// case-sensitive and come as separate lower-case/Title-case pairs.
type ocrFix struct {
	pattern     *regexp.Regexp
	replacement string
}

// ocrRepairTable fixes words that PDF OCR commonly splits with stray
// internal whitespace, per §4.5.1 step 2.
var ocrRepairTable = []ocrFix{
	{regexp.MustCompile(`(?i)\bo\s*therw\s*ise\b`), "otherwise"},
	{regexp.MustCompile(`(?i)\bpun\s*ish\s*able\b`), "punishable"},
	{regexp.MustCompile(`(?i)\bpun\s*ish\s*ment\b`), "punishment"},
	{regexp.MustCompile(`(?i)\bimpr\s*ison\s*ment\b`), "imprisonment"},
	{regexp.MustCompile(`(?i)\bimpr\s*ison\b`), "imprison"},
	{regexp.MustCompile(`(?i)\btransmitt\s*ing\b`), "transmitting"},
	{regexp.MustCompile(`(?i)\btransmit\s*ted\b`), "transmitted"},
	{regexp.MustCompile(`(?i)\boff\s*ence\b`), "offence"},
	{regexp.MustCompile(`(?i)\boff\s*ender\b`), "offender"},
	{regexp.MustCompile(`(?i)\bcom\s*mits?\b`), "commit"},
	{regexp.MustCompile(`(?i)\bcon\s*spires?\b`), "conspire"},
	{regexp.MustCompile(`(?i)\bterr\s*or\s*ism\b`), "terrorism"},
	{regexp.MustCompile(`(?i)\belec\s*tron\s*ic\b`), "electronic"},
	{regexp.MustCompile(`(?i)\bmat\s*er\s*ial\b`), "material"},
	{regexp.MustCompile(`(?i)\bobs\s*cene\b`), "obscene"},
	{regexp.MustCompile(`(?i)\bna\s*tion\b`), "nation"},
	{regexp.MustCompile(`(?i)\bcy\s*ber\b`), "cyber"},
	{regexp.MustCompile(`\bsec\s*tion\b`), "section"},
	{regexp.MustCompile(`\bSec\s*tion\b`), "Section"},
	{regexp.MustCompile(`\bwho\s*ever\b`), "whoever"},
	{regexp.MustCompile(`\bWho\s*ever\b`), "Whoever"},
	{regexp.MustCompile(`(?i)\bex\s*tend\b`), "extend"},
	{regexp.MustCompile(`(?i)\bcaus\s*es\b`), "causes"},
	{regexp.MustCompile(`(?i)\bef\s*fect\b`), "effect"},
	{regexp.MustCompile(`(?i)\bin\s*ter\s*est\b`), "interest"},
	{regexp.MustCompile(`\bper\s*son\b`), "person"},
	{regexp.MustCompile(`\bPer\s*son\b`), "Person"},
	{regexp.MustCompile(`(?i)\bsub\s*ject\b`), "subject"},
	{regexp.MustCompile(`\bpro\s*vi\s*sion\b`), "provision"},
	{regexp.MustCompile(`\bProvi\s*sion\b`), "Provision"},
	{regexp.MustCompile(`\bgov\s*ern\s*ment\b`), "government"},
	{regexp.MustCompile(`\bGov\s*ern\s*ment\b`), "Government"},
	{regexp.MustCompile(`(?i)\blaw\s*ful\b`), "lawful"},
	{regexp.MustCompile(`(?i)\bun\s*law\s*ful\b`), "unlawful"},
	{regexp.MustCompile(`(?i)\bwil\s*ful\b`), "wilful"},
	{regexp.MustCompile(`(?i)\bknow\s*ing\s*ly\b`), "knowingly"},
	{regexp.MustCompile(`(?i)\bin\s*tent\s*ion\b`), "intention"},
	{regexp.MustCompile(`(?i)\bac\s*cused\b`), "accused"},
	{regexp.MustCompile(`(?i)\bcon\s*vict\s*ed\b`), "convicted"},
	{regexp.MustCompile(`(?i)\bsen\s*tence\b`), "sentence"},
	{regexp.MustCompile(`(?i)\bpros\s*ecu\s*tion\b`), "prosecution"},
	{regexp.MustCompile(`(?i)\bevi\s*dence\b`), "evidence"},
	{regexp.MustCompile(`(?i)\bwit\s*ness\b`), "witness"},
	{regexp.MustCompile(`(?i)\bjudg\s*ment\b`), "judgment"},
	{regexp.MustCompile(`(?i)\bver\s*dict\b`), "verdict"},
	{regexp.MustCompile(`\bcrim\s*in\s*al\b`), "criminal"},
	{regexp.MustCompile(`\bCrim\s*in\s*al\b`), "Criminal"},
	{regexp.MustCompile(`\bciv\s*il\b`), "civil"},
	{regexp.MustCompile(`\bCiv\s*il\b`), "Civil"},
	{regexp.MustCompile(`(?i)\bliab\s*il\s*ity\b`), "liability"},
	{regexp.MustCompile(`(?i)\bliab\s*le\b`), "liable"},
	{regexp.MustCompile(`(?i)\bdam\s*ages?\b`), "damage"},
	{regexp.MustCompile(`(?i)\bcom\s*pen\s*sa\s*tion\b`), "compensation"},
	{regexp.MustCompile(`f\s+or\b`), "for"},
	{regexp.MustCompile(`(?i)\bf\s+orm\b`), "form"},
	{regexp.MustCompile(`(?i)\bt\s+o\b`), "to"},
	{regexp.MustCompile(`(?i)\bego\s*vernance\b`), "e-governance"},
	{regexp.MustCompile(`(?i)\begovernance\b`), "e-governance"},
	{regexp.MustCompile(`(?i)\becommerce\b`), "e-commerce"},
	{regexp.MustCompile(`(?i)\babet\s*ment\b`), "abetment"},
	{regexp.MustCompile(`(?i)\bencry\s*ption\b`), "encryption"},
	{regexp.MustCompile(`(?i)\bpre\s*scribe\b`), "prescribe"},
	{regexp.MustCompile(`(?i)\bpro\s*motion\b`), "promotion"},
	{regexp.MustCompile(`\bChair\s*person\b`), "Chairperson"},
	{regexp.MustCompile(`(?i)\badju\s*dicat\s*ing\b`), "adjudicating"},
	{regexp.MustCompile(`\bTri\s*bunal\b`), "Tribunal"},
	{regexp.MustCompile(`\bAppel\s*late\b`), "Appellate"},
}

var (
	punctuationSpacer  = regexp.MustCompile(`([,;:])([a-zA-Z])`)
	openParenSpacer    = regexp.MustCompile(`([a-zA-Z])(\()`)
	closeParenSpacer   = regexp.MustCompile(`(\))([a-zA-Z])`)
	sectionSuffixFixer = regexp.MustCompile(`(\d+)([A-Z]\.)`)
	emDashPeriod       = regexp.MustCompile(`\.[–—]`)
	emDash             = regexp.MustCompile(`[–—]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
	sentenceBoundary   = regexp.MustCompile(`[.]\s*([A-Z][a-z])`)
)

// CleanLegalText implements §4.5.1's five-step cleaning pipeline. It is
// idempotent: CleanLegalText(CleanLegalText(x)) == CleanLegalText(x).
func CleanLegalText(text string) string {
	if text == "" {
		return ""
	}

	for _, p := range amendmentPatterns {
		text = p.ReplaceAllString(text, " ")
	}

	for _, fix := range ocrRepairTable {
		text = fix.pattern.ReplaceAllString(text, fix.replacement)
	}

	text = punctuationSpacer.ReplaceAllString(text, "$1 $2")
	text = openParenSpacer.ReplaceAllString(text, "$1 $2")
	text = closeParenSpacer.ReplaceAllString(text, "$1 $2")

	text = sectionSuffixFixer.ReplaceAllString(text, "$1$2 ")
	text = emDashPeriod.ReplaceAllString(text, ". ")
	text = emDash.ReplaceAllString(text, " - ")

	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	if text != "" {
		first := rune(text[0])
		startsLower := first >= 'a' && first <= 'z'
		if startsLower || strings.HasPrefix(text, "of ") || strings.HasPrefix(text, "for ") {
			if m := sentenceBoundary.FindStringSubmatchIndex(text); m != nil {
				text = text[m[2]:]
			}
		}
	}

	return text
}
