package domain

import "github.com/lexindia/agent/pkg/assert"

// Domain is a coarse legal-area tag, per the glossary.
type Domain string

const (
	DomainCriminal       Domain = "criminal"
	DomainCorporate      Domain = "corporate"
	DomainCivilFamily    Domain = "civil_family"
	DomainITCyber        Domain = "it_cyber"
	DomainTraffic        Domain = "traffic"
	DomainProperty       Domain = "property"
	DomainConstitutional Domain = "constitutional"
	DomainEnvironment    Domain = "environment"

	DomainWildcard = "all"

	DomainDefault = DomainCriminal
)

// AllDomains enumerates every declared domain, in a fixed order used
// wherever a deterministic iteration is required (classification, gating).
var AllDomains = []Domain{
	DomainCriminal,
	DomainCorporate,
	DomainCivilFamily,
	DomainITCyber,
	DomainTraffic,
	DomainProperty,
	DomainConstitutional,
	DomainEnvironment,
}

// ActsByDomain is the fixed per-domain act list required by §6.
var ActsByDomain = map[Domain][]string{
	DomainCriminal:       {"IPC", "BNS", "CrPC", "BNSS", "IEA", "BSA"},
	DomainCorporate:      {"Companies Act", "SEBI Act", "Competition Act", "FEMA"},
	DomainCivilFamily:    {"Hindu Marriage Act", "Special Marriage Act", "CPC", "Domestic Violence Act"},
	DomainITCyber:        {"IT Act", "DPDP Act", "IT Rules"},
	DomainTraffic:        {"Motor Vehicles Act", "IPC", "BNS"},
	DomainProperty:       {"Transfer of Property Act", "Registration Act", "RERA"},
	DomainConstitutional: {"Constitution of India"},
	DomainEnvironment:    {"Environment Protection Act", "Water Act", "Air Act"},
}

// ActAliases maps the loose spellings §4.6A's original-source act-alias
// table uses when extracting cited sections out of free text to a
// canonical act code.
var ActAliases = map[string]string{
	"ipc":                     "IPC",
	"i.p.c.":                  "IPC",
	"indian penal code":       "IPC",
	"bns":                     "BNS",
	"bharatiya nyaya sanhita": "BNS",
	"crpc":                    "CrPC",
	"cr.p.c.":                 "CrPC",
	"bnss":                    "BNSS",
	"section":                 "",
	"sec":                     "",
	"u/s":                     "",
	"धारा":                    "",
}

// RegulatoryBundle is the fixed per-domain bundle §4.4 assigns.
type RegulatoryBundle struct {
	Jurisdiction       string
	ApplicableActs     []string
	KeyAuthorities     []string
	FilingRequirements []string
	TimeLimits         []string
}

// RegulatoryBundles is the fixed table RegulatoryFilter consults.
var RegulatoryBundles = map[Domain]RegulatoryBundle{
	DomainCriminal: {
		Jurisdiction:       "Criminal Courts (Magistrate / Sessions)",
		ApplicableActs:     ActsByDomain[DomainCriminal],
		KeyAuthorities:     []string{"Local Police Station", "District Magistrate", "Sessions Court"},
		FilingRequirements: []string{"First Information Report (FIR)", "Complaint under CrPC/BNSS Section 173"},
		TimeLimits:         []string{"FIR: as soon as practicable", "Charge sheet: typically within 60-90 days"},
	},
	DomainCorporate: {
		Jurisdiction:       "National Company Law Tribunal / SEBI",
		ApplicableActs:     ActsByDomain[DomainCorporate],
		KeyAuthorities:     []string{"Registrar of Companies", "SEBI", "Competition Commission of India"},
		FilingRequirements: []string{"Board resolution", "Statutory filings with ROC"},
		TimeLimits:         []string{"Annual filings: within 60 days of AGM"},
	},
	DomainCivilFamily: {
		Jurisdiction:       "Family Court / District Court",
		ApplicableActs:     ActsByDomain[DomainCivilFamily],
		KeyAuthorities:     []string{"Family Court", "District Court"},
		FilingRequirements: []string{"Petition under applicable personal law"},
		TimeLimits:         []string{"Limitation as per the Limitation Act, 1963"},
	},
	DomainITCyber: {
		Jurisdiction:       "Cyber Crime Cell / Adjudicating Officer",
		ApplicableActs:     ActsByDomain[DomainITCyber],
		KeyAuthorities:     []string{"Cyber Crime Cell", "CERT-In", "Data Protection Board"},
		FilingRequirements: []string{"Complaint on cybercrime.gov.in", "FIR for cognizable IT Act offences"},
		TimeLimits:         []string{"Report promptly to preserve digital evidence"},
	},
	DomainTraffic: {
		Jurisdiction:       "Traffic Police / Motor Accident Claims Tribunal",
		ApplicableActs:     ActsByDomain[DomainTraffic],
		KeyAuthorities:     []string{"Traffic Police", "Regional Transport Office", "MACT"},
		FilingRequirements: []string{"FIR for accidents causing injury/death", "MACT claim petition"},
		TimeLimits:         []string{"MACT claim: no limitation under MV Act s.166"},
	},
	DomainProperty: {
		Jurisdiction:       "Civil Court / RERA Authority",
		ApplicableActs:     ActsByDomain[DomainProperty],
		KeyAuthorities:     []string{"Sub-Registrar", "RERA Authority", "Civil Court"},
		FilingRequirements: []string{"Registered sale deed", "RERA complaint for builder disputes"},
		TimeLimits:         []string{"Limitation: 12 years for possession suits"},
	},
	DomainConstitutional: {
		Jurisdiction:       "High Court / Supreme Court (Writ Jurisdiction)",
		ApplicableActs:     ActsByDomain[DomainConstitutional],
		KeyAuthorities:     []string{"High Court", "Supreme Court"},
		FilingRequirements: []string{"Writ petition under Article 226 or 32"},
		TimeLimits:         []string{"No fixed limitation; laches may bar stale claims"},
	},
	DomainEnvironment: {
		Jurisdiction:       "National Green Tribunal",
		ApplicableActs:     ActsByDomain[DomainEnvironment],
		KeyAuthorities:     []string{"National Green Tribunal", "State Pollution Control Board"},
		FilingRequirements: []string{"NGT application", "Complaint to Pollution Control Board"},
		TimeLimits:         []string{"NGT application: within 6 months of cause of action"},
	},
}

// init guards the static tables above against drift: every declared domain
// must carry an act list and a regulatory bundle, or RegulatoryFilter and
// StatuteRetriever would silently treat it as unscoped.
func init() {
	for _, d := range AllDomains {
		assert.Assert(len(ActsByDomain[d]) > 0, "domain "+string(d)+" has no entry in ActsByDomain")
		_, ok := RegulatoryBundles[d]
		assert.Assert(ok, "domain "+string(d)+" has no entry in RegulatoryBundles")
	}
}
