package coach

import "fmt"

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModePlanSelection UIMode = iota // Plan browsing and selection
	UIModeSession                     // Live session with timers and progress
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModePlanSelection, DisplayName: "Plan Selection", KeyBinding: '1'},
	{Mode: UIModeSession, DisplayName: "Session", KeyBinding: '2'},
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

// formatSeconds renders a second count as M:SS.
func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// formatMinutes renders a second count as a rough minute figure for
// plan list entries.
func formatMinutes(total int) string {
	minutes := (total + 30) / 60
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("~%d min", minutes)
}
