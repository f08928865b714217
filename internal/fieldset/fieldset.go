// Package fieldset validates the shape of raw request bodies against an
// entity's declared field list before any field-level validation runs.
package fieldset

import (
	"fmt"

	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// Field declares one accepted request field.
type Field struct {
	Name     string
	Required bool
}

// Set is an entity's complete accepted field list.
type Set []Field

// Names returns the accepted field names in declaration order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Validate checks the submitted fields against the set. With strict on
// (create), every required field must be present; in all cases a submitted
// field outside the set is rejected.
func (s Set) Validate(submitted map[string]interface{}, strict bool) error {
	if strict {
		for _, f := range s {
			if !f.Required {
				continue
			}
			if _, ok := submitted[f.Name]; !ok {
				return appErrors.Clone(appErrors.ErrMissingKey, fmt.Sprintf("required field %q is missing", f.Name))
			}
		}
	}

	allowed := make(map[string]struct{}, len(s))
	for _, f := range s {
		allowed[f.Name] = struct{}{}
	}
	for key := range submitted {
		if _, ok := allowed[key]; !ok {
			return appErrors.Clone(appErrors.ErrBadKey, fmt.Sprintf("field %q is not accepted", key))
		}
	}
	return nil
}
