package problem

// Document keys.
const (
	KeyMetadata = "metadata"
	KeyA        = "A"
	KeyB        = "b"

	KeyIsSPD          = "is_spd"
	KeyIsSequence     = "is_sequence_of_problems"
	KeyDimension      = "dimension"
	KeyScalarKind     = "scalar_kind"
	KeyDescription    = "description"
	KeyDatasetName    = "dataset_name"
	KeyProjectURL     = "project_url"
	KeyContactEmail   = "contact_email"
	KeyRawDumpVersion = "raw_dump_version"
	KeyVersionNumber  = "version_number"

	legacyKeyLHS        = "lhs"
	legacyKeyRHS        = "rhs"
	legacyKeyIsSPD      = "is_symmetric_positive_definite"
	legacyKeyScalarType = "scalar_type"
)

// RawDumpVersion is the version tag Write stores in raw problem files.
const RawDumpVersion = 2

// legacyMetadataKeys maps old metadata key names to their current names.
var legacyMetadataKeys = map[string]string{
	legacyKeyIsSPD:      KeyIsSPD,
	legacyKeyScalarType: KeyScalarKind,
}
