package qa

import (
	"errors"
	"fmt"

	"github.com/aescanero/qaserve/pkg/domain"
)

// ErrInvalidInquiry marks inquiries rejected before dispatch
var ErrInvalidInquiry = errors.New("invalid inquiry")

// Validator validates inquiries against size limits. A zero limit
// disables the check.
type Validator struct {
	maxQuestionBytes int
	maxContextBytes  int
}

// NewValidator creates a new inquiry validator
func NewValidator(maxQuestionBytes, maxContextBytes int) *Validator {
	return &Validator{
		maxQuestionBytes: maxQuestionBytes,
		maxContextBytes:  maxContextBytes,
	}
}

// Validate validates an inquiry
func (v *Validator) Validate(inquiry domain.Inquiry) error {
	if v.maxQuestionBytes > 0 && len(inquiry.Question) > v.maxQuestionBytes {
		return fmt.Errorf("%w: question exceeds %d bytes", ErrInvalidInquiry, v.maxQuestionBytes)
	}

	if v.maxContextBytes > 0 && len(inquiry.Context) > v.maxContextBytes {
		return fmt.Errorf("%w: context exceeds %d bytes", ErrInvalidInquiry, v.maxContextBytes)
	}

	return nil
}
