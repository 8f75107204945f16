// Package clock supplies the timestamps stamped on aquarium records.
//
// Usecases take a Clocker so tests can pin time with Fixed.
package clock
