package importer

import (
	"io"

	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

// Source names the system a vendor file was exported from.
type Source string

const (
	SourceAuto       Source = ""
	SourceSAM        Source = "sam"
	SourceAcquiTrack Source = "acquitrack"
)

type Importer interface {
	Parse(r io.Reader) ([]vendor.CreateParams, error)
}
