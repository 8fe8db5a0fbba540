package mpegps

import (
	"bytes"
	"fmt"
	"strings"
)

// RenderText renders successful results in the MediaInfo-like text layout.
// Failed files are left out; callers report their errors separately.
func RenderText(results []FileResult) string {
	var buf bytes.Buffer
	first := true
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !first {
			buf.WriteString("\n")
		}
		first = false
		writeGroup(&buf, "General", []Field{{Name: "Complete name", Value: res.Path}})
		buf.WriteString("\n")
		writeGroup(&buf, TechnicalGroup, res.Result.Fields())
	}
	if buf.Len() == 0 {
		return ""
	}
	buf.WriteString("\n")
	buf.WriteString(reportByLine())
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func reportByLine() string {
	return fmt.Sprintf("ReportBy : %s - %s\n", AppName, FormatVersion(AppVersion))
}

func writeGroup(buf *bytes.Buffer, title string, fields []Field) {
	buf.WriteString(title)
	buf.WriteString("\n")
	for _, field := range fields {
		buf.WriteString(padRight(field.Name, 41))
		buf.WriteString(": ")
		buf.WriteString(field.Value)
		buf.WriteString("\n")
	}
}
