package prescription

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State transitions possibilities:
//
//	new → processing → analyzed
//	processing → error
//
// analyzed and error are terminal. Nothing retries a failed analysis and nothing
// times out a row stuck in processing.
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusAnalyzed   Status = "analyzed"
	StatusError      Status = "error"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusAnalyzed, StatusError:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusAnalyzed || s == StatusError
}

// UploadedPrescription is a prescription document awaiting or holding an analysis.
type UploadedPrescription struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	FileName   string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	FileURL    string    `gorm:"column:file_url;type:text;not null" json:"file_url"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime;index" json:"uploaded_at"`
	FileType   string    `gorm:"column:file_type;type:varchar(100)" json:"file_type"`
	FileSize   string    `gorm:"column:file_size;type:varchar(30)" json:"file_size"`

	Status    Status  `gorm:"column:status;type:varchar(20);not null;default:'new';index" json:"status"`
	AISummary *string `gorm:"column:ai_summary;type:text" json:"ai_summary,omitempty"`
}

func (UploadedPrescription) TableName() string {
	return "uploaded_prescriptions"
}

func (p *UploadedPrescription) Validate() error {
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}
	return nil
}

func (p *UploadedPrescription) CanTransitionTo(next Status) bool {
	if p.Status.IsTerminal() {
		return false
	}
	allowed := map[Status][]Status{
		StatusNew:        {StatusProcessing},
		StatusProcessing: {StatusAnalyzed, StatusError},
	}

	for _, s := range allowed[p.Status] {
		if s == next {
			return true
		}
	}
	return false
}

func (p *UploadedPrescription) StartAnalysis() error {
	if !p.CanTransitionTo(StatusProcessing) {
		return ErrInvalidStatusTransition
	}
	p.Status = StatusProcessing
	return nil
}

func (p *UploadedPrescription) CompleteAnalysis(summary string) error {
	if !p.CanTransitionTo(StatusAnalyzed) {
		return ErrInvalidStatusTransition
	}
	p.Status = StatusAnalyzed
	p.AISummary = &summary
	return nil
}

func (p *UploadedPrescription) FailAnalysis() error {
	if !p.CanTransitionTo(StatusError) {
		return ErrInvalidStatusTransition
	}
	p.Status = StatusError
	return nil
}
