package verification

// Outcome is the terminal result of a pipeline run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidInput
	OutcomePartnerNotFound
	OutcomeInvalidChecksum
	OutcomeStorageFailure
)

var outcomeCodes = map[Outcome]struct{ code, message, name string }{
	OutcomeSuccess:         {"00", "Success", "success"},
	OutcomeInvalidInput:    {"01", "Invalid Input Data", "invalid_input"},
	OutcomePartnerNotFound: {"02", "Bank Code not found", "partner_not_found"},
	OutcomeInvalidChecksum: {"03", "Invalid CheckSum", "invalid_checksum"},
	OutcomeStorageFailure:  {"99", "System error", "storage_failure"},
}

// Code is the wire response code.
func (o Outcome) Code() string {
	if v, ok := outcomeCodes[o]; ok {
		return v.code
	}
	return outcomeCodes[OutcomeStorageFailure].code
}

// Message is the wire response message.
func (o Outcome) Message() string {
	if v, ok := outcomeCodes[o]; ok {
		return v.message
	}
	return outcomeCodes[OutcomeStorageFailure].message
}

func (o Outcome) String() string {
	if v, ok := outcomeCodes[o]; ok {
		return v.name
	}
	return "unknown"
}

// Retryable reports whether resubmitting the same notification may succeed.
// Only infrastructure failures qualify.
func (o Outcome) Retryable() bool {
	return o == OutcomeStorageFailure
}
