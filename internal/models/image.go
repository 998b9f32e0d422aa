package models

import "time"

// MIMETypeJPEG is the encoding used for captured frames.
const MIMETypeJPEG = "image/jpeg"

// CapturedImage is one still frame handed from the camera to a caller.
// The camera keeps no reference to Data after handing it over.
type CapturedImage struct {
	Data       []byte
	MIMEType   string
	Width      int
	Height     int
	CapturedAt time.Time
}

// Empty reports whether the image carries no bytes.
func (i CapturedImage) Empty() bool {
	return len(i.Data) == 0
}
