package trainer

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeWorkout  UIMode = iota // Live countdown and plan
	UIModeSettings               // Workout configuration form
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeWorkout, DisplayName: "Workout", KeyBinding: '1'},
	{Mode: UIModeSettings, DisplayName: "Settings", KeyBinding: '2'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// Workout mode keys
const (
	KeyToggleWorkout = ' '
	KeySkipSegment   = 'n'
	KeyResetWorkout  = 'r'
)

const maxLogLines = 1000
