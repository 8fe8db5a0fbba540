package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-mpegprobe/internal/mpegps"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "%s, %s\n", mpegps.AppName, mpegps.FormatVersion(appVersion))
}
