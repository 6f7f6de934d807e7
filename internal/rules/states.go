package rules

import "github.com/shopspring/decimal"

// referenceProvenance names the source of the per-state reference rates.
const referenceProvenance = "state revenue department publications, 2025 vendor rate file"

func implemented(rs RuleSet) Definition {
	return Definition{State: rs.State, Status: StatusImplemented, Rules: &rs}
}

func stub(state, reason string) Definition {
	return Definition{State: state, Status: StatusStub, StubReason: reason}
}

// noSalesTax builds a definition for a state with no vehicle sales tax.
// Title and registration fees still apply.
func noSalesTax(state string, regFee, titleFee int64) Definition {
	return implemented(RuleSet{
		State:           state,
		StateRate:       decimal.Zero,
		Scheme:          SchemeNoSalesTax,
		TradeInPolicy:   TradeInNone,
		LeaseMethod:     LeasePayment,
		Reciprocity:     ReciprocityNone,
		RegistrationFee: decimal.NewFromInt(regFee),
		TitleFee:        decimal.NewFromInt(titleFee),
	})
}

// stateDefinitions is the authoritative rule table. One entry per modeled
// state; stubs mark schemes that are known but not yet expressible here.
var stateDefinitions = []Definition{
	implemented(RuleSet{
		State:                "AL",
		StateRate:            decimal.NewFromFloat(0.02),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(23),
		TitleFee:             decimal.NewFromInt(18),
	}),
	implemented(RuleSet{
		State:                "AZ",
		StateRate:            decimal.NewFromFloat(0.056),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(8),
		TitleFee:             decimal.NewFromInt(4),
	}),
	implemented(RuleSet{
		State:                "AR",
		StateRate:            decimal.NewFromFloat(0.065),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, GAP: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(17),
		TitleFee:             decimal.NewFromInt(10),
	}),
	implemented(RuleSet{
		State:         "CA",
		StateRate:     decimal.NewFromFloat(0.06),
		Scheme:        SchemeStateLocal,
		TradeInPolicy: TradeInNone,
		Fees:          FeeTaxability{DocFee: true, Accessories: true},
		MaxDocFee:     decimal.NewFromInt(85),
		// California taxes the pre-rebate price.
		RebateReducesTaxable: false,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(74),
		TitleFee:             decimal.NewFromInt(23),
	}),
	implemented(RuleSet{
		State:                "CO",
		StateRate:            decimal.NewFromFloat(0.029),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(75),
		TitleFee:             decimal.NewFromFloat(7.20),
	}),
	implemented(RuleSet{
		State:                "CT",
		StateRate:            decimal.NewFromFloat(0.0635),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		// Vehicles over $50,000 pay the higher 7.75% rate on the excess.
		LuxuryThreshold: decimal.NewFromInt(50000),
		LuxuryRate:      decimal.NewFromFloat(0.014),
		LeaseMethod:     LeasePayment,
		Reciprocity:     ReciprocityFull,
		RegistrationFee: decimal.NewFromInt(120),
		TitleFee:        decimal.NewFromInt(25),
	}),
	implemented(RuleSet{
		State:                "FL",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, GAP: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(27.60),
		TitleFee:             decimal.NewFromFloat(75.25),
	}),
	implemented(RuleSet{
		State:                "ID",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(69),
		TitleFee:             decimal.NewFromInt(14),
	}),
	implemented(RuleSet{
		State:         "IL",
		StateRate:     decimal.NewFromFloat(0.0625),
		Scheme:        SchemeStateLocal,
		TradeInPolicy: TradeInPartialWithCap,
		TradeInCap:    decimal.NewFromInt(10000),
		Fees:          FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		MaxDocFee:     decimal.NewFromFloat(347.26),
		RebateReducesTaxable: true,
		// Illinois taxes the full selling price at lease inception.
		LeaseMethod:     LeaseSellingPrice,
		Reciprocity:     ReciprocityFull,
		RegistrationFee: decimal.NewFromInt(151),
		TitleFee:        decimal.NewFromInt(165),
	}),
	implemented(RuleSet{
		State:     "IN",
		StateRate: decimal.NewFromFloat(0.07),
		Scheme:    SchemeStateOnly,
		// Indiana taxes the price-minus-trade difference directly.
		TradeInPolicy:        TradeInTaxOnDiff,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(21.35),
		TitleFee:             decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "IA",
		StateRate:            decimal.NewFromFloat(0.05),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(180),
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(60),
		TitleFee:             decimal.NewFromFloat(25.75),
	}),
	implemented(RuleSet{
		State:                "KS",
		StateRate:            decimal.NewFromFloat(0.065),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(39),
		TitleFee:             decimal.NewFromInt(10),
	}),
	implemented(RuleSet{
		State:                "KY",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityNone,
		RegistrationFee:      decimal.NewFromInt(21),
		TitleFee:             decimal.NewFromInt(9),
	}),
	implemented(RuleSet{
		State:                "LA",
		StateRate:            decimal.NewFromFloat(0.0445),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(20),
		TitleFee:             decimal.NewFromFloat(68.50),
	}),
	implemented(RuleSet{
		State:                "ME",
		StateRate:            decimal.NewFromFloat(0.055),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(35),
		TitleFee:             decimal.NewFromInt(33),
	}),
	implemented(RuleSet{
		State:                "MD",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(500),
		RebateReducesTaxable: false,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(135),
		TitleFee:             decimal.NewFromInt(100),
	}),
	implemented(RuleSet{
		State:                "MA",
		StateRate:            decimal.NewFromFloat(0.0625),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(60),
		TitleFee:             decimal.NewFromInt(75),
	}),
	implemented(RuleSet{
		State:         "MI",
		StateRate:     decimal.NewFromFloat(0.06),
		Scheme:        SchemeStateOnly,
		TradeInPolicy: TradeInPartialWithCap,
		// Phased trade-in credit cap, 2024 step.
		TradeInCap:           decimal.NewFromInt(10000),
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(260),
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(120),
		TitleFee:             decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "MN",
		StateRate:            decimal.NewFromFloat(0.06875),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(125),
		RebateReducesTaxable: true,
		LeaseMethod:          LeaseTotalCapCost,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(65),
		TitleFee:             decimal.NewFromFloat(8.25),
	}),
	implemented(RuleSet{
		State:                "MS",
		StateRate:            decimal.NewFromFloat(0.05),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(14),
		TitleFee:             decimal.NewFromInt(9),
	}),
	implemented(RuleSet{
		State:                "MO",
		StateRate:            decimal.NewFromFloat(0.04225),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(51.25),
		TitleFee:             decimal.NewFromFloat(8.50),
	}),
	implemented(RuleSet{
		State:                "NE",
		StateRate:            decimal.NewFromFloat(0.055),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(15),
		TitleFee:             decimal.NewFromInt(10),
	}),
	implemented(RuleSet{
		State:                "NV",
		StateRate:            decimal.NewFromFloat(0.0685),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(33),
		TitleFee:             decimal.NewFromFloat(28.25),
	}),
	implemented(RuleSet{
		State:                "NJ",
		StateRate:            decimal.NewFromFloat(0.06625),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		// Luxury surcharge on the portion above $45,000.
		LuxuryThreshold: decimal.NewFromInt(45000),
		LuxuryRate:      decimal.NewFromFloat(0.004),
		LeaseMethod:     LeaseTotalCapCost,
		Reciprocity:     ReciprocityFull,
		RegistrationFee: decimal.NewFromFloat(46.50),
		TitleFee:        decimal.NewFromInt(60),
	}),
	implemented(RuleSet{
		State:                "NY",
		StateRate:            decimal.NewFromFloat(0.04),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(175),
		RebateReducesTaxable: true,
		LeaseMethod:          LeaseTotalCapCost,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(26),
		TitleFee:             decimal.NewFromInt(50),
	}),
	implemented(RuleSet{
		State:     "NC",
		StateRate: decimal.NewFromFloat(0.03),
		Scheme:    SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(38),
		TitleFee:             decimal.NewFromInt(56),
	}),
	implemented(RuleSet{
		State:                "OH",
		StateRate:            decimal.NewFromFloat(0.0575),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, GAP: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(250),
		RebateReducesTaxable: false,
		LeaseMethod:          LeaseTotalCapCost,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(31),
		TitleFee:             decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "OK",
		StateRate:            decimal.NewFromFloat(0.0325),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(96),
		TitleFee:             decimal.NewFromInt(11),
	}),
	implemented(RuleSet{
		State:                "PA",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(144),
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(39),
		TitleFee:             decimal.NewFromInt(58),
	}),
	implemented(RuleSet{
		State:                "RI",
		StateRate:            decimal.NewFromFloat(0.07),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(30),
		TitleFee:             decimal.NewFromFloat(52.50),
	}),
	implemented(RuleSet{
		State:         "SC",
		StateRate:     decimal.NewFromFloat(0.05),
		Scheme:        SchemeStateOnly,
		TradeInPolicy: TradeInFull,
		Fees:          FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		// Infrastructure maintenance fee ceiling.
		TaxCap:          decimal.NewFromInt(500),
		LeaseMethod:     LeasePayment,
		Reciprocity:     ReciprocityFull,
		RegistrationFee: decimal.NewFromInt(40),
		TitleFee:        decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "SD",
		StateRate:            decimal.NewFromFloat(0.04),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(36),
		TitleFee:             decimal.NewFromInt(10),
	}),
	implemented(RuleSet{
		State:                "TN",
		StateRate:            decimal.NewFromFloat(0.07),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(26.50),
		TitleFee:             decimal.NewFromInt(14),
	}),
	implemented(RuleSet{
		State:                "TX",
		StateRate:            decimal.NewFromFloat(0.0625),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		// Texas taxes the full capitalized cost at lease signing.
		LeaseMethod:     LeaseTotalCapCost,
		Reciprocity:     ReciprocityFull,
		RegistrationFee: decimal.NewFromFloat(50.75),
		TitleFee:        decimal.NewFromInt(33),
	}),
	implemented(RuleSet{
		State:                "UT",
		StateRate:            decimal.NewFromFloat(0.0485),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(44),
		TitleFee:             decimal.NewFromInt(6),
	}),
	implemented(RuleSet{
		State:                "VT",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(76),
		TitleFee:             decimal.NewFromInt(35),
	}),
	implemented(RuleSet{
		State:     "VA",
		StateRate: decimal.NewFromFloat(0.0415),
		Scheme:    SchemeStateOnly,
		// Virginia's motor vehicle SUT allows no trade-in deduction.
		TradeInPolicy:        TradeInNone,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: false,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityNone,
		RegistrationFee:      decimal.NewFromFloat(30.75),
		TitleFee:             decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "WA",
		StateRate:            decimal.NewFromFloat(0.065),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Warranty: true, GAP: true, Maintenance: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(200),
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(68.25),
		TitleFee:             decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "WV",
		StateRate:            decimal.NewFromFloat(0.06),
		Scheme:               SchemeStateOnly,
		TradeInPolicy:        TradeInTaxOnDiff,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		MaxDocFee:            decimal.NewFromInt(175),
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromFloat(51.50),
		TitleFee:             decimal.NewFromInt(15),
	}),
	implemented(RuleSet{
		State:                "WI",
		StateRate:            decimal.NewFromFloat(0.05),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(85),
		TitleFee:             decimal.NewFromFloat(164.50),
	}),
	implemented(RuleSet{
		State:                "WY",
		StateRate:            decimal.NewFromFloat(0.04),
		Scheme:               SchemeStateLocal,
		TradeInPolicy:        TradeInFull,
		Fees:                 FeeTaxability{DocFee: true, Accessories: true},
		RebateReducesTaxable: true,
		LeaseMethod:          LeasePayment,
		Reciprocity:          ReciprocityFull,
		RegistrationFee:      decimal.NewFromInt(30),
		TitleFee:             decimal.NewFromInt(15),
	}),

	// States with no sales or use tax on vehicle sales.
	noSalesTax("AK", 100, 15),
	noSalesTax("DE", 40, 35),
	noSalesTax("MT", 87, 12),
	noSalesTax("NH", 60, 25),
	noSalesTax("OR", 126, 101),

	// Known states whose schemes do not fit this engine's model yet.
	stub("GA", "one-time title ad valorem tax (TAVT) replaces sales tax"),
	stub("HI", "general excise tax levied on the seller, not the buyer"),
	stub("NM", "motor vehicle excise tax with its own base rules"),
	stub("DC", "excise tax banded by vehicle weight and fuel efficiency"),
}

// avgLocalRates holds the average combined local rate per state, used by
// the consolidated StateReference records and the rate-resolver fallback.
// State-only and no-sales-tax states carry zero.
var avgLocalRates = map[string]decimal.Decimal{
	"AL": decimal.NewFromFloat(0.0225),
	"AZ": decimal.NewFromFloat(0.0277),
	"AR": decimal.NewFromFloat(0.0295),
	"CA": decimal.NewFromFloat(0.0266),
	"CO": decimal.NewFromFloat(0.0487),
	"FL": decimal.NewFromFloat(0.0102),
	"IL": decimal.NewFromFloat(0.0259),
	"KS": decimal.NewFromFloat(0.0220),
	"LA": decimal.NewFromFloat(0.0510),
	"MO": decimal.NewFromFloat(0.0407),
	"NE": decimal.NewFromFloat(0.0144),
	"NV": decimal.NewFromFloat(0.0138),
	"NY": decimal.NewFromFloat(0.0452),
	"OH": decimal.NewFromFloat(0.0149),
	"PA": decimal.NewFromFloat(0.0034),
	"TN": decimal.NewFromFloat(0.0255),
	"UT": decimal.NewFromFloat(0.0241),
	"WA": decimal.NewFromFloat(0.0290),
	"WI": decimal.NewFromFloat(0.0043),
	"WY": decimal.NewFromFloat(0.0136),
}
