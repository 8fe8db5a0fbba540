package mpegps

type Field struct {
	Name  string
	Value string
}

// TechnicalGroup is the heading the details are listed under.
const TechnicalGroup = "Technical Details"

// Fields lists the display entries for r in report order. Unset values are omitted.
func (r Result) Fields() []Field {
	fields := []Field{}
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}
	add("Resolution", formatResolution(r.Width, r.Height))
	add("Frame rate", formatFrameRate(r.FrameRate))
	add("Video codec", string(r.VideoCodec))
	add("Format profile", r.Profile)
	add("Nominal bit rate", formatBitrateKbps(int64(r.VideoBitRate/1000)))
	if r.CustomMatrix {
		add("Matrix", "Custom")
	}
	add("Chroma subsampling", r.ChromaSubsampling)
	add("Scan type", r.ScanType)
	add("Audio codec", string(r.AudioCodec))
	add("Audio bit rate", formatBitrateKbps(int64(r.AudioBitRateKbps)))
	add("Aspect ratio", string(r.AspectRatio))
	add("Time code of first frame", r.TimeCode)
	add("Time code of last GOP", r.LastTimeCode)
	return fields
}
