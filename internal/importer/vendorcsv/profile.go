package vendorcsv

import (
	"strings"
	"unicode"
)

type field int

const (
	fieldName field = iota
	fieldCageCode
	fieldDUNS
	fieldBusinessType
	fieldCapabilities
	fieldContactName
	fieldContactEmail
	fieldContactPhone
	fieldStreet
	fieldCity
	fieldState
	fieldZipCode
	fieldCountry
)

var requiredFields = []field{fieldName, fieldCageCode, fieldDUNS}

// Profile maps each vendor field to the header spellings an export format uses for it.
// Headers are compared after normalizeHeader, so "CAGE Code" and "cage_code" are the same.
type Profile struct {
	Name    string
	Aliases map[field][]string
}

var (
	ProfileSAM = Profile{
		Name: "sam",
		Aliases: map[field][]string{
			fieldName:         {"legalbusinessname"},
			fieldCageCode:     {"cagecode"},
			fieldDUNS:         {"dunsnumber", "duns"},
			fieldBusinessType: {"businesstypes", "businesstype"},
			fieldCapabilities: {"naicscodes", "productsandservices"},
			fieldContactName:  {"govtbusinesspocname", "pocname"},
			fieldContactEmail: {"govtbusinesspocemail", "pocemail"},
			fieldContactPhone: {"govtbusinesspocphone", "pocphone"},
			fieldStreet:       {"physicaladdressline1"},
			fieldCity:         {"physicaladdresscity"},
			fieldState:        {"physicaladdressstateorprovince", "physicaladdressstate"},
			fieldZipCode:      {"physicaladdresszippostalcode", "physicaladdresszip"},
			fieldCountry:      {"physicaladdresscountrycode"},
		},
	}

	ProfileAcquiTrack = Profile{
		Name: "acquitrack",
		Aliases: map[field][]string{
			fieldName:         {"name", "vendorname", "vendor", "companyname"},
			fieldCageCode:     {"cagecode", "cage"},
			fieldDUNS:         {"duns", "dunsnumber"},
			fieldBusinessType: {"businesstype", "type"},
			fieldCapabilities: {"capabilities", "services"},
			fieldContactName:  {"contactname", "contact", "pointofcontact"},
			fieldContactEmail: {"contactemail", "email"},
			fieldContactPhone: {"contactphone", "phone"},
			fieldStreet:       {"street", "address"},
			fieldCity:         {"city"},
			fieldState:        {"state"},
			fieldZipCode:      {"zipcode", "zip", "postalcode"},
			fieldCountry:      {"country"},
		},
	}
)

// profiles is the detection order. SAM headers are more specific and go first.
var profiles = []Profile{ProfileSAM, ProfileAcquiTrack}

// columns resolves the profile against a normalized header row. ok is false when a required field is missing.
func (p Profile) columns(header map[string]int) (colIndex, bool) {
	cols := make(colIndex, len(p.Aliases))

	for f, aliases := range p.Aliases {
		for _, alias := range aliases {
			if i, found := header[alias]; found {
				cols[f] = i
				break
			}
		}
	}

	for _, f := range requiredFields {
		if _, found := cols[f]; !found {
			return nil, false
		}
	}

	return cols, true
}

func normalizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, s)
}
