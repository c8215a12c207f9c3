package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/acquitrack/internal/importer/vendorcsv"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

type Service struct {
	importers map[Source]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Source]Importer{
			SourceAuto:       vendorcsv.NewParser(),
			SourceSAM:        vendorcsv.NewParser(vendorcsv.ProfileSAM),
			SourceAcquiTrack: vendorcsv.NewParser(vendorcsv.ProfileAcquiTrack),
		},
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]vendor.CreateParams, error) {
	importer, ok := s.importers[source]
	if !ok {
		return nil, fmt.Errorf("unknown vendor file source: %s", source)
	}

	return importer.Parse(r)
}
