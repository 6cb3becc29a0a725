package audio

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                 {{.Name}}
	{{if .DefaultInputDevice}}Default input device: {{.DefaultInputDevice.Name}}{{end}}
	Input devices: {{range .Devices}}{{if gt .MaxInputChannels 0}}
		Name:               {{.Name}}
		MaxInputChannels:   {{.MaxInputChannels}}
		DefaultSampleRate:  {{.DefaultSampleRate}}
	{{end}}{{end}}
{{end}}`,
))

// Devices renders the host's capture-capable devices using deviceTmpl.
// portaudio must be initialized by the caller.
func Devices() (string, error) {
	hs, err := portaudio.HostApis()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureOpen, err)
	}
	buf := bytes.NewBuffer(nil)
	if err := deviceTmpl.Execute(buf, hs); err != nil {
		return "", err
	}
	return buf.String(), nil
}
