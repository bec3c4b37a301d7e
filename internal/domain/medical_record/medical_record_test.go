package medical_record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedicalRecord_Validate(t *testing.T) {
	for _, c := range []Category{CategoryPrescription, CategoryLabResults, CategoryImaging, CategoryCheckup, CategoryOther} {
		assert.NoError(t, (&MedicalRecord{Category: c}).Validate(), c)
	}

	err := (&MedicalRecord{Category: "radiology"}).Validate()
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Contains(t, err.Error(), `"radiology"`)

	assert.ErrorIs(t, (&MedicalRecord{}).Validate(), ErrInvalidCategory)
}
