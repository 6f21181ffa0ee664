package problem

import (
	"fmt"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
)

// MigrateLegacyKeys renames the legacy top-level keys "lhs" and "rhs" to "A"
// and "b", and legacy metadata keys to their current names. doc is not
// modified; a migrated copy is returned.
//
// The rewrite is idempotent and a document without legacy keys comes back
// equal to doc. Finding only one of lhs and rhs, or a legacy key next to its
// replacement, fails with benchy.ErrBadFormat.
func MigrateLegacyKeys(doc document.Value) (document.Value, error) {
	if doc.Kind() != document.KindMap {
		return doc, nil
	}

	hasLHS, hasRHS := doc.Has(legacyKeyLHS), doc.Has(legacyKeyRHS)
	if hasLHS != hasRHS {
		return document.Value{}, fmt.Errorf("%w: found only one of %q and %q",
			benchy.ErrBadFormat, legacyKeyLHS, legacyKeyRHS)
	}

	out := doc.Clone()
	if hasLHS {
		if out.Has(KeyA) || out.Has(KeyB) {
			return document.Value{}, fmt.Errorf("%w: legacy %q/%q next to %q/%q",
				benchy.ErrBadFormat, legacyKeyLHS, legacyKeyRHS, KeyA, KeyB)
		}
		rename(out, legacyKeyLHS, KeyA)
		rename(out, legacyKeyRHS, KeyB)
	}

	if meta, ok := out.Get(KeyMetadata); ok && meta.Kind() == document.KindMap {
		if err := migrateMetadata(meta); err != nil {
			return document.Value{}, err
		}
	}
	return out, nil
}

// migrateMetadata renames legacy metadata keys in place.
func migrateMetadata(meta document.Value) error {
	for old, current := range legacyMetadataKeys {
		if !meta.Has(old) {
			continue
		}
		if meta.Has(current) {
			return fmt.Errorf("%w: metadata has both %q and %q", benchy.ErrBadFormat, old, current)
		}
		rename(meta, old, current)
	}
	return nil
}

func rename(m document.Value, from, to string) {
	v, _ := m.Get(from)
	m.Delete(from)
	m.Set(to, v)
}
