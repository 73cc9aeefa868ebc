package handlers

// HandlerBundle groups the handlers so route registration takes one argument.
type HandlerBundle struct {
	Professional *ProfessionalHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Appointment  *AppointmentHandler
}
