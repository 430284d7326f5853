package errs

import "errors"

var (
	ErrCodeTooLong              = errors.New("code exceeds the maximum allowed length")
	ErrSubmissionNotFound       = errors.New("submission not found")
	ErrInvalidVoteDirection     = errors.New("vote direction must be 1 or -1")
	ErrInvalidReviewDestination = errors.New("context and destination must not be empty")
)
