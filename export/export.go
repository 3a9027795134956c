package export

import (
	"fmt"

	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/models"
	"github.com/saulfrancisco-ruizacevedo/go-smartgraph/request"
)

// Content types of the two renderings.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeGraphML = "application/graphml+xml"
)

// Render renders doc in the requested format and returns the matching content type.
func Render(doc *models.Document, format request.Format) ([]byte, string, error) {
	switch format {
	case request.FormatJSON, "":
		b, err := JSON(doc)
		return b, ContentTypeJSON, err
	case request.FormatGraphML:
		b, err := GraphML(doc)
		return b, ContentTypeGraphML, err
	}
	return nil, "", fmt.Errorf("export: unsupported format %q", format)
}
