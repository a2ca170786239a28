package types

import "time"

// DocumentPurpose is the semantic category of an uploaded document.
type DocumentPurpose string

const (
	DocumentPurposeIdentification    DocumentPurpose = "IDENTIFICATION"
	DocumentPurposeInstructorLicense DocumentPurpose = "INSTRUCTOR_LICENSE"
	DocumentPurposeProofOfResidency  DocumentPurpose = "PROOF_OF_RESIDENCY"
)

// DocumentSide distinguishes a single-sided document from one face of a
// two-sided original. SINGLE never mixes with FRONT/BACK for the same purpose.
type DocumentSide string

const (
	DocumentSideSingle DocumentSide = "SINGLE"
	DocumentSideFront  DocumentSide = "FRONT"
	DocumentSideBack   DocumentSide = "BACK"
)

type DocumentStatus string

const (
	DocumentStatusPendingUpload DocumentStatus = "PENDING_UPLOAD"
	DocumentStatusUploaded      DocumentStatus = "UPLOADED"
	DocumentStatusVerified      DocumentStatus = "VERIFIED"
	DocumentStatusRejected      DocumentStatus = "REJECTED"
)

type Document struct {
	ID           string          `db:"id" json:"id"`
	OnboardingID string          `db:"onboarding_id" json:"onboardingId"`
	Purpose      DocumentPurpose `db:"purpose" json:"purpose"`
	Side         DocumentSide    `db:"side" json:"side"`

	StorageBucket string `db:"storage_bucket" json:"storageBucket"`
	StorageKey    string `db:"storage_key" json:"storageKey"`

	// Populated only after the upload is confirmed against storage.
	OriginalFilename *string    `db:"original_filename" json:"originalFilename,omitempty"`
	FileSizeBytes    *int64     `db:"file_size_bytes" json:"fileSizeBytes,omitempty"`
	MimeType         *string    `db:"mime_type" json:"mimeType,omitempty"`
	UploadedAt       *time.Time `db:"uploaded_at" json:"uploadedAt,omitempty"`

	Status DocumentStatus `db:"status" json:"status"`

	// ReviewNote holds the reviewer's reason when a document is rejected.
	ReviewNote *string `db:"review_note" json:"reviewNote,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UploadTarget is what a caller needs to push bytes directly to storage.
type UploadTarget struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
}

// ObjectInfo is storage's authoritative answer about an uploaded object.
type ObjectInfo struct {
	SizeBytes int64
	MimeType  string
}

// DocumentDownload pairs a reviewed-or-uploaded document with a short-lived
// download URL.
type DocumentDownload struct {
	DocumentID       string          `json:"documentId"`
	Purpose          DocumentPurpose `json:"purpose"`
	Side             DocumentSide    `json:"side"`
	OriginalFilename *string         `json:"originalFilename,omitempty"`
	MimeType         *string         `json:"mimeType,omitempty"`
	Status           DocumentStatus  `json:"status"`
	UploadedAt       *time.Time      `json:"uploadedAt,omitempty"`
	DownloadURL      string          `json:"downloadUrl"`
}
