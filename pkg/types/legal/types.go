// Package legal defines the shared enumerated types of the legal domain:
// frameworks, claim types, claim statuses, and evidence link types.  Domain
// packages and the persistence layer both depend on these definitions, so
// they live here rather than inside any single bounded context.
package legal

// Framework identifies the body of law a claim is made under.
type Framework string

const (
	FrameworkPakistani     Framework = "pakistani"
	FrameworkInternational Framework = "international"
)

// IsValid checks if the Framework is supported.
func (f Framework) IsValid() bool {
	switch f {
	case FrameworkPakistani, FrameworkInternational:
		return true
	default:
		return false
	}
}

// ClaimType subdivides Pakistani-framework claims by the nature of the law
// invoked.  International claims carry no type subdivision.
type ClaimType string

const (
	ClaimTypeCriminal   ClaimType = "criminal"
	ClaimTypeRegulatory ClaimType = "regulatory"
	ClaimTypeCivil      ClaimType = "civil"
)

// IsValid checks if the ClaimType is valid.
func (t ClaimType) IsValid() bool {
	switch t {
	case ClaimTypeCriminal, ClaimTypeRegulatory, ClaimTypeCivil:
		return true
	default:
		return false
	}
}

// ClaimStatus represents the derived evidentiary standing of a claim.
type ClaimStatus string

const (
	StatusUnverified         ClaimStatus = "unverified"
	StatusSupported          ClaimStatus = "supported"
	StatusUnsupported        ClaimStatus = "unsupported"
	StatusPartiallySupported ClaimStatus = "partially_supported"
)

// IsValid checks if the ClaimStatus is valid.
func (s ClaimStatus) IsValid() bool {
	switch s {
	case StatusUnverified, StatusSupported, StatusUnsupported, StatusPartiallySupported:
		return true
	default:
		return false
	}
}

// AllStatuses returns every valid claim status.  The order matches the
// partition reported by CorrelationAnalysis.
func AllStatuses() []ClaimStatus {
	return []ClaimStatus{
		StatusSupported,
		StatusUnsupported,
		StatusPartiallySupported,
		StatusUnverified,
	}
}

// LinkType classifies the evidentiary relation between a claim and an
// artifact.
type LinkType string

const (
	LinkSupports    LinkType = "supports"
	LinkContradicts LinkType = "contradicts"
	LinkPartial     LinkType = "partial"
	LinkExhibit     LinkType = "exhibit"
)

// IsValid checks if the LinkType is valid.
func (t LinkType) IsValid() bool {
	switch t {
	case LinkSupports, LinkContradicts, LinkPartial, LinkExhibit:
		return true
	default:
		return false
	}
}
