// Package catalog holds the static legal-section reference data: the
// sections of Pakistani criminal, regulatory, and civil law and the
// international instruments that claims can be filed under.  The tables are
// constant lookup data; nothing here touches a store.
package catalog

import (
	"sort"
	"strings"

	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

// Section describes one entry of a legal-section catalog.
type Section struct {
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Framework   legal.Framework `json:"framework"`
	ClaimType   legal.ClaimType `json:"claim_type,omitempty"`
	Description string          `json:"description,omitempty"`
}

// pakistaniCriminalSections covers the Pakistan Penal Code (PPC) provisions
// most frequently invoked in the cases this system tracks.
var pakistaniCriminalSections = []Section{
	{Code: "PPC 420", Title: "Cheating and dishonestly inducing delivery of property", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 468", Title: "Forgery for purpose of cheating", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 471", Title: "Using as genuine a forged document", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 500", Title: "Punishment for defamation", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 506", Title: "Punishment for criminal intimidation", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 365", Title: "Kidnapping or abducting with intent secretly and wrongfully to confine", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 337", Title: "Punishment of causing hurt", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
	{Code: "PPC 109", Title: "Punishment of abetment", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCriminal},
}

// pakistaniRegulatorySections covers PECA and related regulatory provisions.
var pakistaniRegulatorySections = []Section{
	{Code: "PECA 20", Title: "Offences against dignity of a natural person", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeRegulatory},
	{Code: "PECA 21", Title: "Offences against modesty of a natural person", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeRegulatory},
	{Code: "PECA 24", Title: "Cyber stalking", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeRegulatory},
	{Code: "FIA Act 5", Title: "Powers of inquiry and investigation", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeRegulatory},
}

// pakistaniCivilSections covers the civil-side provisions.
var pakistaniCivilSections = []Section{
	{Code: "CPC Order 39", Title: "Temporary injunctions and interlocutory orders", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCivil},
	{Code: "Contract Act 73", Title: "Compensation for loss caused by breach of contract", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCivil},
	{Code: "Defamation Ord 3", Title: "Defamation", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCivil},
	{Code: "Specific Relief 42", Title: "Declaratory decrees", Framework: legal.FrameworkPakistani, ClaimType: legal.ClaimTypeCivil},
}

// internationalSections covers the international human-rights instruments.
// International claims carry no claim-type subdivision.
var internationalSections = []Section{
	{Code: "UDHR Art 3", Title: "Right to life, liberty and security of person", Framework: legal.FrameworkInternational},
	{Code: "UDHR Art 5", Title: "Freedom from torture and cruel, inhuman or degrading treatment", Framework: legal.FrameworkInternational},
	{Code: "UDHR Art 9", Title: "Freedom from arbitrary arrest, detention or exile", Framework: legal.FrameworkInternational},
	{Code: "UDHR Art 12", Title: "Freedom from arbitrary interference with privacy", Framework: legal.FrameworkInternational},
	{Code: "ICCPR Art 7", Title: "Prohibition of torture", Framework: legal.FrameworkInternational},
	{Code: "ICCPR Art 9", Title: "Liberty and security of person", Framework: legal.FrameworkInternational},
	{Code: "ICCPR Art 14", Title: "Right to a fair trial", Framework: legal.FrameworkInternational},
	{Code: "ICCPR Art 17", Title: "Protection against unlawful interference with privacy", Framework: legal.FrameworkInternational},
	{Code: "CAT Art 1", Title: "Definition of torture", Framework: legal.FrameworkInternational},
}

// Sections returns the catalog entries for the given framework, optionally
// narrowed to a claim type.  A zero-value claimType returns the whole
// framework catalog.  The result is a fresh slice sorted by section code.
func Sections(framework legal.Framework, claimType legal.ClaimType) []Section {
	var out []Section
	for _, s := range all() {
		if s.Framework != framework {
			continue
		}
		if claimType != "" && s.ClaimType != claimType {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Lookup finds the catalog entry for a section code within a framework.
// The match on code is case-insensitive.
func Lookup(code string, framework legal.Framework) (Section, bool) {
	for _, s := range all() {
		if s.Framework == framework && strings.EqualFold(s.Code, code) {
			return s, true
		}
	}
	return Section{}, false
}

// KnownSection reports whether the code belongs to the framework's catalog.
// Claims may reference sections outside the catalog; the flag is advisory,
// used by handlers to warn rather than reject.
func KnownSection(code string, framework legal.Framework) bool {
	_, ok := Lookup(code, framework)
	return ok
}

func all() []Section {
	out := make([]Section, 0,
		len(pakistaniCriminalSections)+
			len(pakistaniRegulatorySections)+
			len(pakistaniCivilSections)+
			len(internationalSections))
	out = append(out, pakistaniCriminalSections...)
	out = append(out, pakistaniRegulatorySections...)
	out = append(out, pakistaniCivilSections...)
	out = append(out, internationalSections...)
	return out
}
