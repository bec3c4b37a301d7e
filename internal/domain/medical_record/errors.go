package medical_record

import "errors"

var ErrInvalidCategory = errors.New("invalid medical record category")
