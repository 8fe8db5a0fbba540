package mpegps

import (
	"encoding/json"
)

type jsonLibrary struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

type jsonMedia struct {
	Ref    string            `json:"@ref"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"technical,omitempty"`
}

type jsonPayload struct {
	CreatingLibrary jsonLibrary `json:"creatingLibrary"`
	Media           []jsonMedia `json:"media"`
}

// RenderJSON renders all results, failed ones included with their error text.
func RenderJSON(results []FileResult) string {
	payload := jsonPayload{
		CreatingLibrary: jsonLibrary{Name: AppName, Version: FormatVersion(AppVersion), URL: AppURL},
		Media:           make([]jsonMedia, 0, len(results)),
	}
	for _, res := range results {
		media := jsonMedia{Ref: res.Path}
		if res.Err != nil {
			media.Error = res.Err.Error()
		} else {
			media.Fields = map[string]string{}
			for _, field := range res.Result.Fields() {
				media.Fields[field.Name] = field.Value
			}
		}
		payload.Media = append(payload.Media, media)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}
