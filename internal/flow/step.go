// Package flow implements the applicant intake state machine and the
// operator catalog-editing flow. It is transport-free: inputs arrive as
// plain values and outputs are Prompt descriptors the bot layer renders.
package flow

import "slices"

// Step identifies a node in the applicant navigation graph.
type Step string

const (
	StepSelectDistrict Step = "select_district"
	StepSelectJob      Step = "select_job"
	StepEnterName      Step = "enter_name"
	StepEnterPhone     Step = "enter_phone"
	StepSubmitDiploma  Step = "submit_diploma"
	StepSubmitRef      Step = "submit_reference"
	StepSubmitCert     Step = "submit_certificate"
	StepEnterPassport  Step = "enter_passport"

	// StepFinalize is a pseudo-step: it never appears as a session's
	// current step, only in the Prompt returned once submission is ready.
	StepFinalize Step = "finalize"
)

// InputKind declares what a step accepts.
type InputKind int

const (
	InputMenu InputKind = iota
	InputText
	InputDocument
	InputTextOrContact
)

// DocRole tags an uploaded document with its position in the bundle.
type DocRole string

const (
	RoleDiploma     DocRole = "diploma"
	RoleReference   DocRole = "reference"
	RoleCertificate DocRole = "certificate"
)

// AllowedMIMETypes is the closed set of accepted upload types.
var AllowedMIMETypes = []string{
	"application/pdf",
	"application/zip",
	"application/x-zip-compressed",
	"application/x-rar-compressed",
}

// AllowedDocument reports whether the MIME type is accepted for upload.
func AllowedDocument(mime string) bool {
	return slices.Contains(AllowedMIMETypes, mime)
}

// Document is an uploaded file reference with its display name and role.
type Document struct {
	Role     DocRole `json:"role"`
	FileID   string  `json:"file_id"`
	FileName string  `json:"file_name"`
}

// Application is the finalized bundle forwarded to the operator.
type Application struct {
	District  string
	Job       string
	FullName  string
	Phone     string
	Documents []Document
	Passport  string
}
