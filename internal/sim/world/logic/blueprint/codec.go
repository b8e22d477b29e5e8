package blueprint

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/grid"
)

// ErrNotASnapshot marks input whose shape is not an entity snapshot at all
// (missing placement, origin or code). Callers treat it as "this value is
// not a blueprint", not as a fault.
var ErrNotASnapshot = errors.New("not an entity snapshot")

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

var snapshotSchema = jsonschema.MustCompileString("tilecraft.ai/schemas/entity_snapshot.schema.json", snapshotSchemaJSON)

// DecodeValue converts one externally supplied value into a snapshot.
//
// Shape violations return ErrNotASnapshot. A well-shaped record that cannot
// be reconstructed (unknown type code, off-grid rotation, extras the type
// does not carry) returns a descriptive error instead. Unknown fields,
// including a stray unique id or wiring links, are ignored.
func DecodeValue(cats *catalogs.Catalogs, v any) (EntitySnapshot, error) {
	var s EntitySnapshot
	if err := snapshotSchema.Validate(v); err != nil {
		return s, ErrNotASnapshot
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return s, ErrNotASnapshot
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, ErrNotASnapshot
	}

	def, ok := cats.Buildings.ByCode[s.Placement.Code]
	if !ok {
		return s, fmt.Errorf("unknown type code %d", s.Placement.Code)
	}
	if s.Placement.Rotation%90 != 0 {
		return s, fmt.Errorf("%s: rotation %d is not a quarter turn", def.ID, s.Placement.Rotation)
	}
	if s.Extras != nil && def.Extras == "" {
		return s, fmt.Errorf("%s: type carries no extras", def.ID)
	}

	s.Placement.Rotation = grid.NormalizeDegrees(s.Placement.Rotation)
	s.Placement.OriginalRotation = grid.NormalizeDegrees(s.Placement.OriginalRotation)
	return s, nil
}

// DecodeAll converts an externally supplied value into a Template.
//
// The input must be an ordered sequence and every element must decode; any
// single failure aborts the whole batch, so a partial template is never
// returned. Failures are logged and reported as ok=false, never raised.
func DecodeAll(cats *catalogs.Catalogs, v any) (*Template, bool) {
	seq, ok := v.([]any)
	if !ok {
		log.Printf("blueprint: import rejected: value is not a sequence")
		return nil, false
	}
	t := &Template{Entities: make([]EntitySnapshot, 0, len(seq))}
	for i, el := range seq {
		s, err := DecodeValue(cats, el)
		if err != nil {
			if errors.Is(err, ErrNotASnapshot) {
				log.Printf("blueprint: import rejected: element %d is not a snapshot", i)
			} else {
				log.Printf("blueprint: import rejected: element %d: %v", i, err)
			}
			return nil, false
		}
		t.Entities = append(t.Entities, s)
	}
	return t, true
}

// EncodeAll is the export counterpart of DecodeAll: the persisted value is a
// plain ordered sequence of snapshot records.
func EncodeAll(t *Template) []EntitySnapshot {
	out := make([]EntitySnapshot, len(t.Entities))
	copy(out, t.Entities)
	return out
}
