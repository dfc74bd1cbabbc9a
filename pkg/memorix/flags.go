package memorix

import "github.com/mvrcunha/mx2md/pkg/core"

// Bit positions of the Memorix note flag field, verified against real
// backups. Bits 5/6/7 encode the font size; bit 7 is exclusive.
const (
	flagTrashed        = 1 << 1
	flagList           = 1 << 2
	flagChecksToBottom = 1 << 4
	flagFontLarge      = 1 << 5
	flagFontHuge       = 1 << 6
	flagFontTiny       = 1 << 7
	flagPinned         = 1 << 10
	flagArchived       = 1 << 12
)

func hasFlag(flags, mask int) bool {
	return flags&mask != 0
}

func fontSize(flags int) core.FontSize {
	large := hasFlag(flags, flagFontLarge)
	huge := hasFlag(flags, flagFontHuge)

	switch {
	case hasFlag(flags, flagFontTiny):
		return core.FontTiny
	case large && huge:
		return core.FontSmall
	case large:
		return core.FontLarge
	case huge:
		return core.FontHuge
	default:
		return core.FontNormal
	}
}
