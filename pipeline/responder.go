package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/generator"
	"github.com/lexindia/agent/pkg/tokens"
)

// sourceTokenBudget bounds each statute/case excerpt fed to the Generator,
// so a handful of long documents can't crowd the whole context window.
const sourceTokenBudget = 220

const disclaimerEN = "\n\n*Disclaimer: This information is for educational purposes only and does not constitute legal advice. Please consult a qualified legal professional for specific legal matters.*"
const disclaimerHI = "\n\n*अस्वीकरण: यह जानकारी केवल शैक्षिक उद्देश्यों के लिए है और कानूनी सलाह नहीं है। विशिष्ट कानूनी मामलों के लिए कृपया किसी योग्य कानूनी पेशेवर से परामर्श करें।*"

// Responder is stage S7: it either short-circuits with the rejection
// message, or builds a constrained prompt and calls the Generator, falling
// back to a deterministic Markdown template when no Generator is wired.
// Grounded on original_source's response_agent.py.
type Responder struct {
	gen generator.Generator // optional
}

var _ Stage = (*Responder)(nil)

func NewResponder(gen generator.Generator) *Responder {
	return &Responder{gen: gen}
}

func (r *Responder) Name() StageName { return StageResponder }

func (r *Responder) Process(ctx context.Context, rc *RequestContext) error {
	if !rc.IsRelevant {
		rc.ResponsePrimary = rc.RejectionReason
		rc.ResponseSecondary = r.translate(ctx, rc.RejectionReason, rc.DetectedLanguage)
		return nil
	}

	var primary string
	if r.gen != nil {
		out, err := r.generateWithLLM(ctx, rc)
		if err != nil {
			rc.AppendError(r.Name(), fmt.Sprintf("generator unavailable, using template: %v", err))
			primary = r.templateResponse(rc)
		} else {
			primary = out
		}
	} else {
		primary = r.templateResponse(rc)
	}

	r.attachTakeaways(rc, primary)

	rc.ResponsePrimary = primary
	if rc.DetectedLanguage == domain.LanguageHindi {
		rc.ResponseSecondary = primary
	} else {
		rc.ResponseSecondary = r.translate(ctx, primary, domain.LanguageHindi)
	}

	return nil
}

func (r *Responder) generateWithLLM(ctx context.Context, rc *RequestContext) (string, error) {
	system := r.systemPreamble(rc)
	messages := []generator.Message{
		{Role: generator.RoleSystem, Content: system},
		{Role: generator.RoleUser, Content: rc.Query},
	}
	return r.gen.Generate(ctx, messages, generator.DefaultOptions)
}

func (r *Responder) systemPreamble(rc *RequestContext) string {
	var b strings.Builder

	switch rc.DetectedLanguage {
	case domain.LanguageHindi:
		b.WriteString("आप एक सटीक भारतीय कानूनी सहायक हैं। केवल नीचे दिए गए स्रोतों के आधार पर उत्तर दें, और प्रत्येक दावे के लिए उद्धरण दें।\n\n")
	default:
		b.WriteString("You are a precise Indian legal assistant. Answer strictly from the sources below and cite every claim.\n\n")
	}

	if len(rc.Statutes) > 0 {
		b.WriteString("## Relevant Statutes\n")
		for _, s := range top(rc.Statutes, 5) {
			b.WriteString(fmt.Sprintf("- %s Section %s: %s\n", s.ActCode, s.SectionNumber, s.Title))
			b.WriteString(fmt.Sprintf("  %s\n", tokens.Default().Truncate(truncateRunes(s.Content, 800), sourceTokenBudget)))
		}
	}
	if len(rc.IPCBNSMappings) > 0 {
		b.WriteString("\n## IPC to BNS Mappings\n")
		for _, m := range rc.IPCBNSMappings {
			b.WriteString(fmt.Sprintf("- IPC %s -> BNS %s\n", m.IPCSection, m.BNSSection))
		}
	}
	if len(rc.CaseLaws) > 0 {
		b.WriteString("\n## Relevant Case Laws\n")
		for _, c := range top(rc.CaseLaws, 3) {
			landmark := ""
			if c.IsLandmark {
				landmark = " (LANDMARK)"
			}
			b.WriteString(fmt.Sprintf("- %s%s: %s\n", c.CaseName, landmark, tokens.Default().Truncate(truncateRunes(c.Summary, 800), sourceTokenBudget)))
		}
	}
	if rc.RegulatoryNotes != nil {
		b.WriteString(fmt.Sprintf("\n## Jurisdiction: %s\n", rc.RegulatoryNotes.Jurisdiction))
	}

	return b.String()
}

func top[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// templateResponse renders the same sections as Markdown, used when no
// Generator is configured (§4.7's fallback).
func (r *Responder) templateResponse(rc *RequestContext) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("## Legal Information for: \"%s\"\n\n", rc.Query))
	b.WriteString("*Note: AI-powered analysis is unavailable. Showing relevant legal documents found.*\n\n")

	if len(rc.Statutes) > 0 {
		b.WriteString("## Relevant Legal Provisions\n\n")
		for i, s := range top(rc.Statutes, 5) {
			header := statuteHeader(i+1, s.ActCode, s.SectionNumber, s.Title, s.Domain)
			content := collapseWhitespace(s.Content)
			content = truncateRunes(content, 500)
			b.WriteString(header + "\n")
			b.WriteString("> " + content + "\n\n")
			if s.PunishmentDescription != "" {
				b.WriteString("**Punishment:** " + s.PunishmentDescription + "\n")
			}
		}
	}

	if len(rc.IPCBNSMappings) > 0 {
		b.WriteString("\n## IPC to BNS Transition\n")
		for _, m := range top(rc.IPCBNSMappings, 2) {
			b.WriteString(fmt.Sprintf("**IPC Section %s -> BNS Section %s**\n", m.IPCSection, m.BNSSection))
			for _, change := range m.Changes {
				b.WriteString("- " + change + "\n")
			}
			if m.PunishmentChanged {
				b.WriteString(fmt.Sprintf("\nPunishment Change: %s -> %s\n", m.OldPunishment, m.NewPunishment))
			}
		}
	}

	if len(rc.CaseLaws) > 0 {
		b.WriteString("\n## Relevant Case Laws\n")
		for _, c := range top(rc.CaseLaws, 3) {
			landmark := ""
			if c.IsLandmark {
				landmark = " (LANDMARK)"
			}
			b.WriteString(fmt.Sprintf("### %s%s\n", c.CaseName, landmark))
			b.WriteString(fmt.Sprintf("*%s, %d*\n", c.CourtName, c.ReportingYear))
			b.WriteString(c.Summary + "\n")
			if len(c.KeyHoldings) > 0 {
				b.WriteString("**Key Holdings:**\n")
				for _, h := range top(c.KeyHoldings, 3) {
					b.WriteString("- " + h + "\n")
				}
			}
		}
	}

	if rc.RegulatoryNotes != nil {
		b.WriteString("\n## Regulatory Information\n")
		if len(rc.RegulatoryNotes.ApplicableActs) > 0 {
			b.WriteString("**Applicable Laws:** " + strings.Join(top(rc.RegulatoryNotes.ApplicableActs, 5), ", ") + "\n")
		}
		if len(rc.RegulatoryNotes.KeyAuthorities) > 0 {
			b.WriteString("**Key Authorities:** " + strings.Join(top(rc.RegulatoryNotes.KeyAuthorities, 4), ", ") + "\n")
		}
	}

	if len(rc.Citations) > 0 {
		b.WriteString("\n## Sources & Citations\n")
		for i, c := range top(rc.Citations, 5) {
			b.WriteString(fmt.Sprintf("[%d] %s - [%s](%s)\n", i+1, c.Title, c.SourceName, c.URL))
		}
	}

	if rc.DetectedLanguage == domain.LanguageHindi {
		return b.String() + disclaimerHI
	}
	return b.String() + disclaimerEN
}

func statuteHeader(i int, actCode, section, title, domainName string) string {
	var header string
	if actCode != "" && section != "" {
		header = fmt.Sprintf("**%d. %s Section %s**", i, actCode, section)
		if title != "" {
			header += " - " + title
		}
	} else {
		header = fmt.Sprintf("**%d. Legal Provision**", i)
	}
	if domainName != "" {
		header += " [" + domainName + "]"
	}
	return header
}

var whitespaceCollapse = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceCollapse.ReplaceAllString(s, " "))
}

// translate asks the Generator for a translation, falling back to the
// original text when no Generator is configured or the call fails — the
// Responder must never block a response on translation.
func (r *Responder) translate(ctx context.Context, text string, target domain.Language) string {
	if r.gen == nil || text == "" {
		return text
	}
	targetName := "Hindi"
	if target != domain.LanguageHindi {
		targetName = string(target)
	}
	out, err := r.gen.Generate(ctx, []generator.Message{
		{Role: generator.RoleUser, Content: "Translate to " + targetName + ", maintaining legal terminology:\n\n" + text},
	}, generator.DefaultOptions)
	if err != nil {
		return text
	}
	return out
}

var citationBlockSplit = regexp.MustCompile(`📌 \*\*(?:Citation|Hawaala|उद्धरण):\*\*`)
var sourceLinePattern = regexp.MustCompile(`(?i)(?:- \*\*)?Source:\s*\*\*(.*?)(?:\*\*|\n)`)
var sourceLineFallback = regexp.MustCompile(`(?i)Source:\s*(.*?)(?:\n|$)`)
var sectionLinePattern = regexp.MustCompile(`(?i)(?:- \*\*)?Section:\s*\*\*(.*?)(?:\*\*|\n)`)
var sectionLineFallback = regexp.MustCompile(`(?i)Section:\s*(.*?)(?:\n|$)`)
var takeawayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:- \*\*)?Takeaway:\s*\*\*(.*?)(?:\*\*|\n|$)`),
	regexp.MustCompile(`(?is)(?:- \*\*)?Takeaway:\s*(.*?)(?:\n|$)`),
	regexp.MustCompile(`(?is)(?:- \*\*)?निष्कर्ष:\s*\*\*(.*?)(?:\*\*|\n|$)`),
	regexp.MustCompile(`(?is)(?:- \*\*)?निष्कर्ष:\s*(.*?)(?:\n|$)`),
}

type parsedTakeaway struct {
	source   string
	section  string
	takeaway string
}

// attachTakeaways parses citation blocks the generator may have emitted and
// attaches a takeaway string to the first previously built citation whose
// title mentions both the block's source (case-insensitively) and section
// (§4.7).
func (r *Responder) attachTakeaways(rc *RequestContext, responseText string) {
	parsed := parseTakeaways(responseText)
	for _, p := range parsed {
		cleaned := domain.CleanLegalText(p.takeaway)
		for i := range rc.Citations {
			title := strings.ToLower(rc.Citations[i].Title)
			if strings.Contains(title, strings.ToLower(p.source)) && strings.Contains(rc.Citations[i].Title, p.section) {
				rc.Citations[i].Takeaway = cleaned
				break
			}
		}
	}
	for i := range rc.Citations {
		if rc.Citations[i].Excerpt != "" {
			rc.Citations[i].Excerpt = domain.CleanLegalText(rc.Citations[i].Excerpt)
		}
	}
}

func parseTakeaways(text string) []parsedTakeaway {
	blocks := citationBlockSplit.Split(text, -1)
	if len(blocks) < 2 {
		return nil
	}

	var out []parsedTakeaway
	for _, block := range blocks[1:] {
		source := firstMatchGroup(block, sourceLinePattern, sourceLineFallback)
		section := firstMatchGroup(block, sectionLinePattern, sectionLineFallback)

		var takeaway string
		for _, p := range takeawayPatterns {
			if m := p.FindStringSubmatch(block); m != nil {
				takeaway = strings.TrimSpace(m[1])
				break
			}
		}

		if source != "" && section != "" && takeaway != "" {
			out = append(out, parsedTakeaway{source: source, section: section, takeaway: takeaway})
		}
	}
	return out
}

func firstMatchGroup(block string, primary, fallback *regexp.Regexp) string {
	if m := primary.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fallback.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
