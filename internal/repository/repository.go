// Package repository gives each top-level collection of the document
// create/read/update/delete semantics. All repositories share the same store
// and every mutation runs as one serialized load-mutate-save cycle.
package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/travelbook/internal/domain"
)

// newID derives identifiers from wall-clock milliseconds, matching the ids
// already present in existing documents.
func newID() int64 {
	return time.Now().UnixMilli()
}

// validatePatch rejects update bodies that are not JSON objects before they
// reach json.Unmarshal merge semantics.
func validatePatch(patch []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(patch, &probe); err != nil {
		return fmt.Errorf("%w: body must be a JSON object", domain.ErrInvalid)
	}
	return nil
}
