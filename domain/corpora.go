package domain

// ClassifierCorpus is the fixed per-domain pseudo-document used by both the
// BM25 lexical signal and the cached semantic embeddings in §4.1.3's domain
// classifier. One short representative document per domain.
var ClassifierCorpus = map[Domain]string{
	DomainCriminal: "murder theft assault robbery kidnapping rape criminal offence fir police arrest bail " +
		"punishment imprisonment ipc bns cognizable bailable sessions court charge sheet investigation",
	DomainCorporate: "company director shareholder board resolution merger acquisition sebi securities " +
		"compliance annual filing registrar of companies insider trading competition act fema",
	DomainCivilFamily: "divorce marriage maintenance custody alimony domestic violence dowry succession " +
		"inheritance adoption hindu marriage act family court guardianship",
	DomainITCyber: "cyber crime hacking data breach phishing online fraud identity theft data protection " +
		"privacy information technology act intermediary cert-in personal data",
	DomainTraffic: "road accident driving license traffic challan rash driving drunk driving motor vehicle " +
		"insurance claim hit and run pedestrian negligence rto mact",
	DomainProperty: "property sale deed registration possession tenant landlord eviction title dispute " +
		"rera builder flat encroachment partition easement transfer of property act",
	DomainConstitutional: "fundamental rights writ petition article constitution supreme court high court " +
		"public interest litigation judicial review directive principles article 226 article 32",
	DomainEnvironment: "pollution environment clearance forest land green tribunal industrial waste " +
		"water act air act ngt environmental impact assessment",
}
