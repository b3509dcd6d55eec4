package referral

import "errors"

var ErrCodeGenerationFailed = errors.New("referral_code_generation_failed")
