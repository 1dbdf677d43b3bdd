//go:build !unix

package progress

func terminalWidth() int {
	return defaultWidth
}
