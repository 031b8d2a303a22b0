// Package validate gates workflow progression on field rules. Failures
// come back as a field → message map, never as an error; callers surface
// the messages inline and block advancement.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to a human-readable message. An empty map
// means the input is valid.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// messages are the user-facing texts keyed by json field name. Unlisted
// fields get a generic message.
var messages = map[string]string{
	"firstName":      "First name must be at least 2 characters",
	"lastName":       "Last name must be at least 2 characters",
	"email":          "Invalid email address",
	"phone":          "Phone number must be at least 10 digits",
	"dateOfBirth":    "Date of birth is required",
	"nationality":    "Nationality is required",
	"passportNumber": "Passport number is required",
	"passportExpiry": "Passport expiry date is required",
	"termsAccepted":  "You must accept the terms and conditions",
	"kind":           "Schedule type must be airline or cargo",
	"name":           "Name is required",
	"origin":         "Origin is required",
	"departureDate":  "Departure date is required",
	"departureTime":  "Departure time is required",
	"arrivalDate":    "Arrival date is required",
	"arrivalTime":    "Arrival time is required",
	"seat":           "Invalid seat preference",
	"meal":           "Invalid meal preference",
}

// Validator wraps the tag-driven validator with this domain's messages.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that reports fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Passenger validates the step-2 wizard submission. termsAccepted must be
// literally true, not merely present.
func (va *Validator) Passenger(req models.PassengerDetailsRequest) FieldErrors {
	fe := FieldErrors{}
	va.collect(fe, req.Passenger)
	va.collect(fe, req.Preferences)
	if !req.TermsAccepted {
		fe["termsAccepted"] = messages["termsAccepted"]
	}
	return fe
}

// Schedule validates a schedule create/edit submission, including the
// cross-field rules: origin must differ from destination, and the arrival
// timestamp must be strictly after departure.
func (va *Validator) Schedule(req models.CreateScheduleRequest) FieldErrors {
	fe := FieldErrors{}
	va.collect(fe, req)

	if _, clash := fe["destination"]; req.Destination != "" && req.Destination == req.Origin && !clash {
		fe["destination"] = "Origin and destination must differ"
	}

	// Only check ordering once both pairs parse.
	if fe.Valid() {
		rec := models.ScheduleRecord{
			DepartureDate: req.DepartureDate,
			DepartureTime: req.DepartureTime,
			ArrivalDate:   req.ArrivalDate,
			ArrivalTime:   req.ArrivalTime,
		}
		dep, depErr := rec.DepartureAt()
		arr, arrErr := rec.ArrivalAt()
		switch {
		case depErr != nil:
			fe["departureDate"] = "Invalid departure date/time"
		case arrErr != nil:
			fe["arrivalDate"] = "Invalid arrival date/time"
		case !arr.After(dep):
			fe["arrivalDate"] = "Arrival must be after departure"
		}
	}
	return fe
}

func (va *Validator) collect(fe FieldErrors, s any) {
	err := va.v.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Struct-level failures should never happen for these inputs.
		fe["_"] = err.Error()
		return
	}
	for _, e := range verrs {
		field := e.Field()
		if msg, ok := messages[field]; ok {
			fe[field] = msg
			continue
		}
		if field == "destination" && e.Tag() == "nefield" {
			fe[field] = "Origin and destination must differ"
			continue
		}
		if field == "destination" {
			fe[field] = "Destination is required"
			continue
		}
		fe[field] = fmt.Sprintf("%s is invalid", field)
	}
}
