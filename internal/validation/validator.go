package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/commerceflow/backend/internal/inquiries"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for CreateInquiryRequest: the category
	// enum includes no multi-word values but status does, so enum membership
	// is checked in code rather than with oneof tags.
	v.RegisterStructValidation(createInquiryStructValidation, CreateInquiryRequest{})

	return v
}

func createInquiryStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateInquiryRequest)

	if !inquiries.ValidCategory(req.Category) {
		sl.ReportError(req.Category, "category", "Category", "inquiry_category", "")
	}
}
