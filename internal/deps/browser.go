package deps

import (
	"strings"

	"tabbatch/internal/browser"
)

// CheckBrowser reports the browser command resolver would launch.
func CheckBrowser(resolver *browser.Resolver) Status {
	status := Status{
		Name:        "Browser",
		Description: "Opens edit and storefront tabs",
	}
	cmd, err := resolver.Resolve()
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	status.Available = true
	status.Command = strings.TrimSpace(cmd.Path + " " + strings.Join(cmd.Args, " "))
	return status
}
