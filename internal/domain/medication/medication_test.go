package medication

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedication_Validate(t *testing.T) {
	assert.NoError(t, (&Medication{Status: StatusActive}).Validate())
	assert.NoError(t, (&Medication{Status: StatusDiscontinued}).Validate())
	assert.ErrorIs(t, (&Medication{Status: "paused"}).Validate(), ErrInvalidStatus)
}
