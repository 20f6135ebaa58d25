// Output: the ordered reservation sequence produced by either scheduler.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
package league

import "leaguesched/availability"

// BookingKind discriminates a Booking's payload.
type BookingKind uint8

const (
	Empty BookingKind = iota
	GameBooking
	PracticeBooking
)

// Booking is the content of a Reservation: empty, a game between two
// teams, or a single-team practice.
type Booking struct {
	Kind BookingKind
	Home TeamID // valid when Kind == GameBooking
	Away TeamID // valid when Kind == GameBooking
	Team TeamID // valid when Kind == PracticeBooking
}

// Reservation is a (slot, booking) pair in the output.
type Reservation struct {
	Field   FieldID
	Window  availability.Window
	Booking Booking
}

// Output is echoed back to the caller that issued a ScheduledInput.
type Output struct {
	UniqueID  uint32
	TimeSlots []Reservation
}
