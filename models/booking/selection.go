package booking

// Step numbers the wizard stages in the order they must be completed.
type Step int

const (
	StepDate Step = iota + 1
	StepTime
	StepResource
	StepPayment
	StepConfirm
)

var stepKeys = map[Step]string{
	StepDate:     "booking.step.date",
	StepTime:     "booking.step.time",
	StepResource: "booking.step.field",
	StepPayment:  "booking.step.payment",
	StepConfirm:  "booking.step.confirm",
}

// TitleKey is the translation key of the step title.
func (s Step) TitleKey() string {
	return stepKeys[s]
}

// Selection is the wizard state. An empty string means the field is unset.
type Selection struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	ResourceID      string `json:"resource_id"`
	PaymentMethodID string `json:"payment_method_id"`
}

// StepState reports whether a stage is done.
type StepState struct {
	Step      Step `json:"step"`
	Completed bool `json:"completed"`
}

// SetDate chooses a date and clears every later choice.
func (s *Selection) SetDate(date string) {
	s.Date = date
	s.Time = ""
	s.ResourceID = ""
	s.PaymentMethodID = ""
}

// SetTime chooses a slot and clears the resource and payment method.
func (s *Selection) SetTime(time string) {
	s.Time = time
	s.ResourceID = ""
	s.PaymentMethodID = ""
}

// SetResource chooses a resource and clears the payment method.
func (s *Selection) SetResource(resourceID string) {
	s.ResourceID = resourceID
	s.PaymentMethodID = ""
}

func (s *Selection) SetPayment(methodID string) {
	s.PaymentMethodID = methodID
}

// CurrentStep is the first stage whose field is unset, or StepConfirm once
// all four fields hold values.
func (s Selection) CurrentStep() Step {
	switch {
	case s.Date == "":
		return StepDate
	case s.Time == "":
		return StepTime
	case s.ResourceID == "":
		return StepResource
	case s.PaymentMethodID == "":
		return StepPayment
	default:
		return StepConfirm
	}
}

// Complete reports whether the selection reached the confirmation summary.
func (s Selection) Complete() bool {
	return s.CurrentStep() == StepConfirm
}

// Steps lists all five stages with their completion flags.
func (s Selection) Steps() []StepState {
	return []StepState{
		{Step: StepDate, Completed: s.Date != ""},
		{Step: StepTime, Completed: s.Time != ""},
		{Step: StepResource, Completed: s.ResourceID != ""},
		{Step: StepPayment, Completed: s.PaymentMethodID != ""},
		{Step: StepConfirm, Completed: s.Complete()},
	}
}

// Field names the settable part of a selection.
type Field string

const (
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldResource Field = "resource"
	FieldPayment  Field = "payment"
)

// Step returns the stage a field belongs to, or 0 for an unknown field.
func (f Field) Step() Step {
	switch f {
	case FieldDate:
		return StepDate
	case FieldTime:
		return StepTime
	case FieldResource:
		return StepResource
	case FieldPayment:
		return StepPayment
	}
	return 0
}

// Set dispatches to the matching setter. It returns false for an unknown field.
func (s *Selection) Set(f Field, value string) bool {
	switch f {
	case FieldDate:
		s.SetDate(value)
	case FieldTime:
		s.SetTime(value)
	case FieldResource:
		s.SetResource(value)
	case FieldPayment:
		s.SetPayment(value)
	default:
		return false
	}
	return true
}
