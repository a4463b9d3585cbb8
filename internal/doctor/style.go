// SPDX-License-Identifier: Apache-2.0

package doctor

// ANSI escape sequences used by the diagnostics banner. Attributes first,
// then the colors in escape-code order.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red    = "\033[31m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
	Gray   = "\033[90m"
)
