package repos

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/derWhity/fyyur/internal/models"
)

// FilterByName returns the entities whose name contains the search string
// Names are compared using Unicode case folding, so "STRASSE" matches "Straße" just as well as "strasse". An empty search
// string matches everything
func FilterByName(refs []models.EntityRef, search string) []models.EntityRef {
	fold := cases.Fold()
	needle := fold.String(search)
	ret := []models.EntityRef{}
	for _, ref := range refs {
		if strings.Contains(fold.String(ref.Name), needle) {
			ret = append(ret, ref)
		}
	}
	return ret
}
