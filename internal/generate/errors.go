// Package generate turns a campaign brief into per-platform content pieces
// and platform-dimensioned images, delegating model calls to collaborator
// services and validating output against the platform constraints.
package generate

// Kind categorizes a generation failure.
type Kind string

const (
	// KindTextTimeout indicates the text model did not respond in time.
	KindTextTimeout Kind = "text_generation_timeout"
	// KindTextRejected indicates the model responded with unusable output
	// (empty or unparsable).
	KindTextRejected Kind = "text_generation_rejected"
	// KindExternalService indicates a transport or upstream API failure.
	KindExternalService Kind = "external_service_error"
	// KindImageSafety indicates the image output was blocked by the
	// content safety filter.
	KindImageSafety Kind = "image_safety_rejected"
)

// Error is a typed generation failure carrying its Kind for classification
// at the platform-pipeline boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
