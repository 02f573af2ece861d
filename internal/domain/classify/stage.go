package classify

// Stage is the explicit two-state capture flow discriminator. It replaces
// a loose string so unknown steps are rejected at parse time instead of
// falling through handler logic.
type Stage int

const (
	// StageIdentify awaits the trash-type classification of the first shot.
	StageIdentify Stage = iota
	// StageConfirm awaits the correct-bin confirmation of the second shot.
	StageConfirm
)

// Wire names accepted by ParseStage.
const (
	stageIdentifyName = "identify"
	stageConfirmName  = "confirm"
)

// ParseStage maps a wire value to a Stage. Anything but the two known
// names yields ErrUnknownStage.
func ParseStage(s string) (Stage, error) {
	switch s {
	case stageIdentifyName:
		return StageIdentify, nil
	case stageConfirmName:
		return StageConfirm, nil
	default:
		return 0, ErrUnknownStage
	}
}

// String returns the wire name of the stage.
func (s Stage) String() string {
	switch s {
	case StageIdentify:
		return stageIdentifyName
	case StageConfirm:
		return stageConfirmName
	default:
		return "invalid"
	}
}
