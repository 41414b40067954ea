package view

type PresetOption struct {
	Dollars  int
	Label    string
	Selected bool
}

type MethodOption struct {
	Code     string
	Label    string
	Selected bool
	Disabled bool
}

type StepIndicator struct {
	Number int
	Label  string
	Active bool
	Done   bool
}

type DonorForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// DonatePage is everything the checkout page needs to render one step.
type DonatePage struct {
	Flash *Flash

	Step  int
	Steps []StepIndicator // shown for the card path only

	Presets      []PresetOption
	CustomAmount string
	Recurring    bool
	Methods      []MethodOption
	Method       string

	Amount      string // "$35.00"
	AmountShort string // "$35"
	HasAmount   bool
	Frequency   string // "One-time" | "Monthly"

	Form        DonorForm
	Missing     map[string]bool
	CanContinue bool

	Processing      bool
	StatusMessage   string
	StatusSuccess   bool
	WalletAvailable bool
	PublishableKey  string
}

func (p DonatePage) IsMethod(code string) bool { return p.Method == code }
