package key

import "github.com/gdamore/tcell/v2"

/**
 * Keys and Runes!
 */

const (
	RuneScan  = 's'
	RuneStop  = 'x'
	RuneReset = 'r'
	RuneQuit  = 'q'
)

const (
	KeyCtrlC = tcell.KeyCtrlC
	KeyEsc   = tcell.KeyEsc
)
