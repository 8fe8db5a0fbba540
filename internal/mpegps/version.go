package mpegps

import "strings"

const (
	AppName = "go-mpegprobe"
	AppURL  = "https://github.com/autobrr/go-mpegprobe"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

func FormatVersion(version string) string {
	if version == "" || version == "dev" {
		return "dev"
	}
	return "v" + strings.TrimPrefix(version, "v")
}
