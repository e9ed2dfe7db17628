package enum

// PaymentMethod identifies how a sale was paid for.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
)

// Valid reports whether the payment method is one the system accepts.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodUPI
}

// PaymentStatus is the recorded state of a sale's payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)
