// Package browsersvc opens URLs in the user's default browser. No library in
// our stack covers this; it shells out to the platform opener.
package browsersvc

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonhub/core"
)

type OSNavigator struct {
	log core.Logger
}

var _ core.Navigator = (*OSNavigator)(nil)

func NewOSNavigator(logger core.Logger) *OSNavigator {
	return &OSNavigator{log: logger}
}

func (n *OSNavigator) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	n.log.Debug("browser: opening " + url)
	return errors.Wrap(cmd.Start(), "opening browser")
}
