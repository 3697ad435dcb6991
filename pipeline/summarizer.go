package pipeline

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/lexindia/agent/generator"
)

// Summarizer is stage S6: when a document is attached to the request, it
// extracts a structured record via regex-first extraction, then asks the
// Generator (if available) to fill in the harder fields, falling back to a
// rule-based key-sentence extraction otherwise. Grounded on
// original_source's summarization_agent.py. Document *ingestion* (the
// async upload job) is out of scope; this stage only ever sees text
// already attached to the request.
type Summarizer struct {
	gen generator.Generator // optional
}

var _ Stage = (*Summarizer)(nil)

func NewSummarizer(gen generator.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

func (s *Summarizer) Name() StageName { return StageSummarizer }

func (s *Summarizer) Process(ctx context.Context, rc *RequestContext) error {
	if rc.AttachedDocument == "" {
		return nil
	}

	text := rc.AttachedDocument
	docType := rc.AttachedDocumentType
	if docType == "" {
		docType = "judgment"
	}

	summary := &DocumentSummary{}

	if m := partiesPattern.FindStringSubmatch(firstNRunes(text, 1000)); m != nil {
		summary.Parties = []string{strings.TrimSpace(m[1]) + " v. " + strings.TrimSpace(m[2])}
	}

	head := firstNRunes(text, 2000)
	for _, p := range courtPatterns {
		if m := p.FindString(head); m != "" {
			summary.CourtName = m
			break
		}
	}

	if m := datePattern.FindStringSubmatch(text); m != nil {
		summary.Date = m[1]
	}

	summary.CitedSections = extractCitedSections(text)

	for _, p := range verdictPatterns {
		if m := p.FindString(text); m != "" {
			summary.Verdict = capitalize(strings.TrimSpace(m))
			break
		}
	}

	if s.gen != nil {
		if filled, err := s.llmSummarize(ctx, text, docType); err == nil && filled != nil {
			summary.KeyArguments = filled.KeyArguments
			summary.LegalIssues = filled.LegalIssues
			summary.RatioDecidendi = filled.RatioDecidendi
			if summary.Verdict == "" {
				summary.Verdict = filled.Verdict
			}
		} else {
			summary.KeyArguments = extractKeySentences(text, 5)
		}
	} else {
		summary.KeyArguments = extractKeySentences(text, 5)
	}

	summary.CaseType = docType
	rc.DocumentSummary = summary

	return nil
}

var partiesPattern = regexp.MustCompile(`(?i)([A-Za-z\s.]+)\s*(?:v\.|vs\.?|versus)\s*([A-Za-z\s.]+)`)

var courtPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Supreme Court of India`),
	regexp.MustCompile(`(?i)High Court of [\w\s]+`),
	regexp.MustCompile(`(?i)[\w\s]+ High Court`),
	regexp.MustCompile(`(?i)District Court`),
	regexp.MustCompile(`(?i)Sessions Court`),
}

var datePattern = regexp.MustCompile(`(?i)(?:dated?|decided on|judgment dated?)\s*[:\-]?\s*(\d{1,2}[\-/.]\d{1,2}[\-/.]\d{4}|\d{1,2}\s+\w+\s+\d{4})`)

var verdictPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:appeal|petition|application)\s+(?:is\s+)?(?:hereby\s+)?(?:allowed|dismissed|partly allowed|remanded)`),
	regexp.MustCompile(`(?i)(?:we|court)\s+(?:hereby\s+)?(?:order|direct|hold)\s+that`),
	regexp.MustCompile(`(?i)conviction\s+(?:under\s+[^.]+)?\s*(?:is\s+)?(?:upheld|set aside|modified)`),
	regexp.MustCompile(`(?i)accused\s+is\s+(?:hereby\s+)?(?:acquitted|convicted)`),
}

var citedSectionPattern = regexp.MustCompile(`(?i)(?:Section|Sec\.|धारा|§)\s*(\d+[A-Za-z]?)\s*(?:of|,)?\s*(?:the\s+)?(IPC|BNS|CrPC|IT Act|Indian Penal Code|Bhartiya Nyaya Sanhita)?`)

func extractCitedSections(text string) []CitedSection {
	seen := map[string]bool{}
	var out []CitedSection
	for _, m := range citedSectionPattern.FindAllStringSubmatch(text, -1) {
		section, act := m[1], m[2]
		if act == "" {
			act = "IPC"
		} else {
			act = strings.ToUpper(act)
		}
		key := act + "_" + section
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, CitedSection{Act: act, Section: section})
	}
	return out
}

var keyPhrases = []string{
	"held that", "court observed", "it was held",
	"issue before", "question of law", "appellant contended",
	"respondent submitted", "therefore", "accordingly",
	"we are of the view", "in our opinion",
}

var sentenceSplitPattern = regexp.MustCompile(`(?:[.!?])\s+`)

func extractKeySentences(text string, max int) []string {
	sentences := sentenceSplitPattern.Split(text, -1)
	var out []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		matched := false
		for _, phrase := range keyPhrases {
			if strings.Contains(lower, phrase) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if len(sentence) > 50 && len(sentence) < 500 {
			out = append(out, strings.TrimSpace(sentence))
			if len(out) >= max {
				break
			}
		}
	}
	return out
}

type llmSummaryFields struct {
	KeyArguments   []string `json:"key_arguments"`
	LegalIssues    []string `json:"legal_issues"`
	Verdict        string   `json:"verdict"`
	RatioDecidendi string   `json:"ratio_decidendi"`
}

func (s *Summarizer) llmSummarize(ctx context.Context, text, docType string) (*llmSummaryFields, error) {
	prompt := "Analyze this legal " + docType + " and extract:\n" +
		"1. Key arguments presented by each party (list format)\n" +
		"2. Main legal issues involved\n" +
		"3. The final verdict/decision\n" +
		"4. The ratio decidendi (principle of law established)\n\n" +
		"Document:\n" + firstNRunes(text, 8000) + "\n\n" +
		`Respond with a JSON object with keys: key_arguments, legal_issues, verdict, ratio_decidendi`

	out, err := s.gen.Generate(ctx, []generator.Message{
		{Role: generator.RoleUser, Content: prompt},
	}, generator.DefaultOptions)
	if err != nil {
		return nil, err
	}

	var fields llmSummaryFields
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		return nil, err
	}
	return &fields, nil
}

func firstNRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
