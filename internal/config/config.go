package config

// Config carries one import operation's settings.
type Config struct {
	InputPath         string
	OutputScene       string
	PreviewPath       string
	CameraName        string
	CameraDisplaySize float64
	MarkerDisplaySize float64
	ShowStats         bool
	BuildVersion      string
}

// Defaults fills in the object conventions of the capture app's reference
// importer.
func (c *Config) Defaults() {
	if c.CameraName == "" {
		c.CameraName = "ARCamera"
	}
	if c.CameraDisplaySize == 0 {
		c.CameraDisplaySize = 0.2
	}
	if c.MarkerDisplaySize == 0 {
		c.MarkerDisplaySize = 0.1
	}
}
