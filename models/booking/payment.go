package booking

// PaymentMethod is one of the ways a booking can be paid.
type PaymentMethod struct {
	ID             string `json:"id"`
	NameKey        string `json:"-"`
	DescriptionKey string `json:"-"`
}

var paymentMethods = []PaymentMethod{
	{ID: "momo", NameKey: "payment.momo", DescriptionKey: "payment.momo.description"},
	{ID: "zalopay", NameKey: "payment.zalopay", DescriptionKey: "payment.zalopay.description"},
	{ID: "banking", NameKey: "payment.banking", DescriptionKey: "payment.banking.description"},
	{ID: "cash", NameKey: "payment.cash", DescriptionKey: "payment.cash.description"},
}

// PaymentMethods returns the supported methods in display order.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// LookupPaymentMethod finds a method by id.
func LookupPaymentMethod(id string) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
