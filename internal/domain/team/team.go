package team

import "strings"

// aliases maps codes the upstream has used historically, or writes with
// dots, to the code the rest of the pipeline expects.
var aliases = map[string]string{
	"LA":  "LAK",
	"NJ":  "NJD",
	"SJ":  "SJS",
	"TB":  "TBL",
	"PHX": "ARI",
	"MON": "MTL",
	"WAS": "WSH",
	"CAL": "CGY",
	"CLB": "CBJ",
	"NAS": "NSH",
}

// Normalize returns the canonical three-letter code for an upstream abbreviation.
func Normalize(abbrev string) string {
	code := strings.ToUpper(strings.TrimSpace(abbrev))
	code = strings.ReplaceAll(code, ".", "")
	if mapped, ok := aliases[code]; ok {
		return mapped
	}
	return code
}

// Resolver adapts Normalize to the usecase team resolver contract.
type Resolver struct{}

func NewResolver() Resolver {
	return Resolver{}
}

func (Resolver) Resolve(abbrev string) string {
	return Normalize(abbrev)
}
