package newgrf

// LoadingStage is one pass over a file's records. A full load walks every
// file once per stage, in configuration order, so that anything one file
// reserves is visible to all files in the following stage.
type LoadingStage uint8

const (
	// GLS_FILESCAN reads just enough to identify the file: the action 8
	// header and the action 14 meta information.
	GLS_FILESCAN LoadingStage = iota

	// GLS_SAFETYSCAN checks that a file configured as static touches
	// nothing another file could observe. Only static files run it.
	GLS_SAFETYSCAN

	// GLS_LABELSCAN collects the goto labels jumps may target.
	GLS_LABELSCAN

	// GLS_INIT evaluates parameters and load-time conditions.
	GLS_INIT

	// GLS_RESERVE claims globally visible ids: translation table slots,
	// engine overrides, sprite ranges.
	GLS_RESERVE

	// GLS_ACTIVATION applies properties, graphics and strings.
	GLS_ACTIVATION

	GLS_END
)

var stageNames = [GLS_END]string{
	"FILESCAN", "SAFETYSCAN", "LABELSCAN", "INIT", "RESERVE", "ACTIVATION",
}

func (s LoadingStage) String() string {
	if s < GLS_END {
		return stageNames[s]
	}
	return "UNKNOWN"
}
