package errcode

// Error code convention:
// - 0: no error
// - 4xxx: user-recoverable problems (validation, stale or missing resources)
// - 5xxx: system errors (storage, upstream analysis service)
const (
	OK              = 0
	Validation      = 4000
	ResourceMissing = 4004
	Superseded      = 4009
	SkillLocked     = 4010
	SystemError     = 5000
	UpstreamError   = 5020
)
