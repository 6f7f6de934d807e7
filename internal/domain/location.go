package domain

// TaxPerspective selects which party's state governs a deal by default.
type TaxPerspective string

const (
	PerspectiveDealerState       TaxPerspective = "DEALER_STATE"
	PerspectiveBuyerState        TaxPerspective = "BUYER_STATE"
	PerspectiveRegistrationState TaxPerspective = "REGISTRATION_STATE"
)

// OverrideMode forces or forbids a state from being primary regardless of
// the rooftop's default perspective.
type OverrideMode string

const (
	OverrideForce  OverrideMode = "FORCE"
	OverrideForbid OverrideMode = "FORBID"
)

// LocationConfig is the rooftop (dealer location) configuration consumed by
// jurisdiction resolution. Owned by a collaborator; read-only here.
type LocationConfig struct {
	HomeState   string         `json:"homeState" validate:"required,len=2"`
	Perspective TaxPerspective `json:"perspective" validate:"required,oneof=DEALER_STATE BUYER_STATE REGISTRATION_STATE"`

	// AllowedRegStates, when non-empty, restricts which out-of-state
	// registrations may govern a deal. The home state never needs listing.
	AllowedRegStates []string                `json:"allowedRegStates,omitempty"`
	Overrides        map[string]OverrideMode `json:"overrides,omitempty"`
	DriveOutEnabled  bool                    `json:"driveOutEnabled"`
	DriveOutStates   []string                `json:"driveOutStates,omitempty"`
}

// DealParty carries the deal-side state facts used for resolution.
type DealParty struct {
	ResidenceState    string `json:"residenceState" validate:"omitempty,len=2"`
	RegistrationState string `json:"registrationState" validate:"omitempty,len=2"`
	VehicleState      string `json:"vehicleState,omitempty" validate:"omitempty,len=2"`
	DeliveryState     string `json:"deliveryState,omitempty" validate:"omitempty,len=2"`
}

// TaxContext is the resolved governing jurisdiction for a deal.
// It is derived per request and discarded after use.
type TaxContext struct {
	PrimaryState        string `json:"primaryState"`
	BuyerResidenceState string `json:"buyerResidenceState"`
	RegistrationState   string `json:"registrationState"`
}
