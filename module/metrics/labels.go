package metrics

const (
	namespaceDeploy = "asistencia"
	subsystemTx     = "transactions"
)

const (
	LabelMethod = "method"
	LabelStatus = "status"
	LabelResult = "result"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

const (
	VerificationVerified        = "verified"
	VerificationAlreadyVerified = "already_verified"
	VerificationFailed          = "failed"
	VerificationSkipped         = "skipped"
)
