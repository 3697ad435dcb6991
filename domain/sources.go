package domain

import "net/url"

// OfficialSource describes one authoritative publisher used to build
// citation and search URLs.
type OfficialSource struct {
	Name        string
	NameHi      string
	BaseURL     string
	Description string
}

// OfficialSources is the fixed registry required by §6.
var OfficialSources = map[string]OfficialSource{
	"gazette": {
		Name:        "The Gazette of India",
		NameHi:      "भारत का राजपत्र",
		BaseURL:     "https://egazette.gov.in",
		Description: "Official publisher of enacted legislation and amendments",
	},
	"indiankanoon": {
		Name:        "Indian Kanoon",
		NameHi:      "इंडियन कानून",
		BaseURL:     "https://indiankanoon.org",
		Description: "Searchable archive of Indian case law and statutes",
	},
	"sci": {
		Name:        "Supreme Court of India",
		NameHi:      "भारत का सर्वोच्च न्यायालय",
		BaseURL:     "https://www.sci.gov.in",
		Description: "Official Supreme Court judgments and orders",
	},
	"legislative": {
		Name:        "Legislative Department, Ministry of Law and Justice",
		NameHi:      "विधायी विभाग",
		BaseURL:     "https://legislative.gov.in",
		Description: "Official bare-act texts",
	},
	"lawcommission": {
		Name:        "Law Commission of India",
		NameHi:      "भारतीय विधि आयोग",
		BaseURL:     "https://lawcommissionofindia.nic.in",
		Description: "Reports informing legislative reform",
	},
}

// IPCDocumentIDs is a fixed, partial table of well-known IPC sections to
// canonical document identifiers on indiankanoon, per §6 and §9's open
// question (provenance: a curated subset mirroring
// original_source/backend/app/services/statute_service.py).
var IPCDocumentIDs = map[string]string{
	"302":  "1560742", // murder
	"304":  "1279877", // culpable homicide
	"307":  "1290514", // attempt to murder
	"376":  "1279834", // rape
	"420":  "1436241", // cheating
	"498A": "110081",  // cruelty by husband or relatives
	"354":  "1279834", // assault on woman
	"306":  "871857",  // abetment to suicide
	"379":  "1279854", // theft
	"384":  "1279782", // extortion
	"392":  "1279793", // robbery
	"406":  "1569253", // criminal breach of trust
	"415":  "1306487", // cheating (definition)
	"499":  "1383364", // defamation
	"500":  "1436475", // punishment for defamation
	"120B": "635852",  // criminal conspiracy
	"34":   "37788",   // acts done with common intention
}

// SearchURL builds a best-effort indiankanoon search URL when no canonical
// document id is known for a statute or case, per §4.5's fallback rule.
func SearchURL(query string) string {
	return OfficialSources["indiankanoon"].BaseURL + "/search/?formInput=" + url.QueryEscape(query)
}

// DocumentURL builds the canonical document URL for a known indiankanoon id.
func DocumentURL(docID string) string {
	return OfficialSources["indiankanoon"].BaseURL + "/doc/" + docID + "/"
}
