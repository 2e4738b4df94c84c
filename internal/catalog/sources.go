package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Language selects a catalog language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// Topic selects a catalog subject area.
type Topic string

const (
	TopicAllDisciplines   Topic = "all"
	TopicEmergencyNursing Topic = "med"
)

// Format selects a downloadable file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatEPUB Format = "epub"
)

// Suffix returns the filename extension for the format, without the dot.
func (f Format) Suffix() string {
	return string(f)
}

// ParseLanguage validates a user-supplied language value.
func ParseLanguage(value string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageGerman:
		return LanguageGerman, nil
	default:
		return "", fmt.Errorf("unsupported language %q (expected en or de)", value)
	}
}

// ParseTopic validates a user-supplied topic value.
func ParseTopic(value string) (Topic, error) {
	switch Topic(strings.ToLower(strings.TrimSpace(value))) {
	case TopicAllDisciplines:
		return TopicAllDisciplines, nil
	case TopicEmergencyNursing:
		return TopicEmergencyNursing, nil
	default:
		return "", fmt.Errorf("unsupported topic %q (expected all or med)", value)
	}
}

// ParseFormat validates a user-supplied format value.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatEPUB:
		return FormatEPUB, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected pdf or epub)", value)
	}
}

// Identity names one catalog: a language plus a topic.
type Identity struct {
	Language Language
	Topic    Topic
}

func (id Identity) String() string {
	return string(id.Language) + "-" + string(id.Topic)
}

// IsZero reports whether the identity carries no values.
func (id Identity) IsZero() bool {
	return id.Language == "" && id.Topic == ""
}

const (
	springerRESTURL = "https://resource-cms.springernature.com/springer-cms/rest"

	catalogENAllURL = springerRESTURL + "/v1/content/17858272/data/v8"
	catalogDEAllURL = springerRESTURL + "/v1/content/17863240/data/v3"
	catalogDEMedURL = springerRESTURL + "/v1/content/17856246/data/v3"

	contentPDFURL  = "https://link.springer.com/content/pdf"
	contentEPUBURL = "https://link.springer.com/download/epub"
)

// Sources is the read-only registry mapping catalog identities to their
// spreadsheet URLs and formats to their content base URLs. It is built once
// at startup and never mutated.
type Sources struct {
	catalogs map[Identity]string
	content  map[Format]string
}

// NewSources builds a registry from explicit tables. Primarily useful for
// pointing catalogs at alternative hosts.
func NewSources(catalogs map[Identity]string, content map[Format]string) *Sources {
	return &Sources{catalogs: catalogs, content: content}
}

// DefaultSources returns the registry for the publisher's known catalogs.
func DefaultSources() *Sources {
	return &Sources{
		catalogs: map[Identity]string{
			{LanguageEnglish, TopicAllDisciplines}:  catalogENAllURL,
			{LanguageGerman, TopicAllDisciplines}:   catalogDEAllURL,
			{LanguageGerman, TopicEmergencyNursing}: catalogDEMedURL,
		},
		content: map[Format]string{
			FormatPDF:  contentPDFURL,
			FormatEPUB: contentEPUBURL,
		},
	}
}

// CatalogURL resolves the spreadsheet URL for an identity. Unregistered
// identities return ErrUnknownCatalog.
func (s *Sources) CatalogURL(id Identity) (string, error) {
	url, ok := s.catalogs[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCatalog, id)
	}
	return url, nil
}

// Registered reports whether the identity has a source URL.
func (s *Sources) Registered(id Identity) bool {
	_, ok := s.catalogs[id]
	return ok
}

// ContentURL composes the download URL for a content id in the given format.
// Pure string composition; no network access.
func (s *Sources) ContentURL(contentID string, format Format) string {
	return s.content[format] + "/" + contentID + "." + format.Suffix()
}

// Identities returns every registered identity sorted by language, then
// topic.
func (s *Sources) Identities() []Identity {
	ids := make([]Identity, 0, len(s.catalogs))
	for id := range s.catalogs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Language != ids[j].Language {
			return ids[i].Language < ids[j].Language
		}
		return ids[i].Topic < ids[j].Topic
	})
	return ids
}
