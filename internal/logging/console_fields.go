package logging

import "strings"

var fieldLabels = map[string]string{
	FieldError:        "Error",
	FieldInputPath:    "Input",
	FieldOutputPath:   "Output",
	FieldAudioPath:    "Audio",
	FieldDevice:       "Device",
	FieldDeviceName:   "GPU",
	FieldModel:        "Model",
	FieldLanguage:     "Language",
	FieldSegmentCount: "Segments",
	"command":         "Command",
	"duration":        "Duration",
}

// displayLabel converts a structured key into the console label shown under a
// log line. Unknown keys are title-cased word by word.
func displayLabel(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '.' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	if len(parts) == 0 {
		return key
	}
	return strings.Join(parts, " ")
}
