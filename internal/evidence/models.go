// Package evidence tracks the artifacts attached to controls and feeds
// attach/detach activity into the timeline.
package evidence

import (
	"strings"
	"time"

	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

// Item is one evidence artifact attached to a control.
type Item struct {
	ID         string       `json:"id"`
	ControlID  id.ControlID `json:"control_id"`
	Type       string       `json:"type"`
	FileName   string       `json:"file_name"`
	UploadedBy string       `json:"uploaded_by,omitempty"`
	UploadedAt time.Time    `json:"uploaded_at"`
}

// AttachInput is the caller-supplied part of an attachment.
type AttachInput struct {
	ControlID id.ControlID `json:"control_id"`
	Type      string       `json:"type"`
	FileName  string       `json:"file_name"`
}

func (in AttachInput) Validate() error {
	if in.ControlID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "evidence requires a control id")
	}
	if strings.TrimSpace(in.Type) == "" {
		return dErrors.New(dErrors.CodeValidation, "evidence requires a type")
	}
	if strings.TrimSpace(in.FileName) == "" {
		return dErrors.New(dErrors.CodeValidation, "evidence requires a file name")
	}
	return nil
}
