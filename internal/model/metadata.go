package model

import "time"

// CaptureMetadata is the cached record describing the most recent capture
// of a subject. AIImageSize is measured from the encoded image actually
// returned to the caller.
type CaptureMetadata struct {
	ID                string    `yaml:"id"                    json:"id"`
	Subject           Subject   `yaml:"-"                     json:"-"`
	SourceLogicalSize Size      `yaml:"source_logical_size"   json:"source_logical_size"`
	AIImageSize       Size      `yaml:"ai_image_size"         json:"ai_image_size"`
	Origin            Point     `yaml:"origin"                json:"origin"`
	CapturedAt        time.Time `yaml:"captured_at"           json:"captured_at"`
	Synthesized       bool      `yaml:"synthesized,omitempty" json:"synthesized,omitempty"`
}
