package interfaces

import "strings"

// Delivery targets for a composed message. An empty target means the
// message goes back where it came from.
const (
	TargetStdout     = "stdout"
	TargetClipboard  = "clipboard"
	FileTargetPrefix = "file:"
)

// FileTarget returns the path of a file:<path> target, or ok == false for
// any other target.
func FileTarget(target string) (path string, ok bool) {
	path, ok = strings.CutPrefix(target, FileTargetPrefix)
	return path, ok && path != ""
}

// OutputHandler writes a composed message to one of the targets
type OutputHandler interface {
	WriteToClipboard(content string) error
	WriteToStdout(content string) error
	WriteToFile(content string, path string) error
}
