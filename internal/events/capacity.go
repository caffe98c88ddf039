package events

// CanRegister is the advisory capacity check a listing uses to disable the
// register action. It is not authoritative: another registrant can land
// between this read and the submit. Admission is decided atomically in the
// store, inside the insert transaction.
func CanRegister(maxRegistrations *int, count int64) bool {
	return maxRegistrations == nil || count < int64(*maxRegistrations)
}
