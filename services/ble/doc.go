// Package ble runs the peripheral connection cycle: wait for admission,
// advertise, serve one connection, return to idle.
//
// Inbound characteristic writes become Events. A Session routes each Event
// to the pin manager or the control dispatcher and returns the frames to send
// back. The Lifecycle owns the loop and the race between the radio and the
// admission signal; when both are ready at once the radio side wins.
//
// Pin and device state outlive sessions. A disconnect never undoes a claim
// or a level.
package ble
