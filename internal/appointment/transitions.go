package appointment

// Transition functions compute the next appointment state from the current
// one plus a recorded fact. They are total: every input maps to a defined
// output state, and no output can have Attended and NoShow true at once.
// Persistence is the caller's concern.

// RecordAttendance applies an attendance fact.
//
// Marking a patient as present completes the appointment and clears any
// no-show flag. Un-marking attendance returns the appointment to pending
// unless an absence is still recorded.
func RecordAttendance(a Appointment, present bool) Appointment {
	if present {
		a.Attended = ptr(true)
		a.NoShow = ptr(false)
		a.Status = StatusCompleted
		return a
	}
	a.Attended = ptr(false)
	if !isTrue(a.NoShow) {
		a.Status = StatusPending
	}
	return a
}

// RecordAbsence applies a no-show fact, the mirror of RecordAttendance.
func RecordAbsence(a Appointment, absent bool) Appointment {
	if absent {
		a.NoShow = ptr(true)
		a.Attended = ptr(false)
		a.Status = StatusNoShow
		return a
	}
	a.NoShow = ptr(false)
	if !isTrue(a.Attended) {
		a.Status = StatusPending
	}
	return a
}

// RecordPayment sets or clears the payment method. Attendance flags and
// status are untouched; toggling a method off is modeled as passing nil.
func RecordPayment(a Appointment, method *PaymentMethod) Appointment {
	a.PaymentMethod = method
	return a
}

// SetStatus overrides the status directly, for explicit schedule edits and
// the confirmed state. Attendance and payment facts are untouched.
func SetStatus(a Appointment, status Status) Appointment {
	a.Status = status
	return a
}

func ptr(b bool) *bool { return &b }

func isTrue(b *bool) bool { return b != nil && *b }
