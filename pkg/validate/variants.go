package validate

// Built-in schema variants. Two dataset shapes feed the same churn pipeline;
// each is one fixed declaration here, selected by name through configuration.

// VariantNames lists the registered variant names.
func VariantNames() []string {
	return []string{"customer-churn", "churn-risk"}
}

// VariantByName returns the registered variant, defaulting to customer-churn
// for unknown names.
func VariantByName(name string) Variant {
	switch name {
	case "churn-risk":
		return ChurnRisk()
	default:
		return CustomerChurn()
	}
}

// CustomerChurn declares the customer churn dataset: one row per customer,
// binary churn outcome.
func CustomerChurn() Variant {
	return Variant{
		Name: "customer-churn",
		Schema: Schema{Columns: []Column{
			{Name: "CustomerID", Type: TypeInt},
			{Name: "Age", Type: TypeInt, Checks: []Check{GE(0), LE(120)}},
			{Name: "Gender", Type: TypeString, Nullable: true},
			{Name: "Tenure", Type: TypeInt, Checks: []Check{GE(0)}},
			{Name: "Usage Frequency", Type: TypeInt, Checks: []Check{GE(0)}},
			{Name: "Support Calls", Type: TypeInt, Checks: []Check{GE(0)}},
			{Name: "Payment Delay", Type: TypeInt, Checks: []Check{GE(0)}},
			{Name: "Subscription Type", Type: TypeString},
			{Name: "Contract Length", Type: TypeString},
			{Name: "Total Spend", Type: TypeInt, Nullable: true, Checks: []Check{GE(0)}},
			{Name: "Last Interaction", Type: TypeInt},
			{Name: "Churn", Type: TypeString, Nullable: true,
				Checks: []Check{OneOf("0", "1", "Yes", "No", "True", "False", "true", "false")}},
		}},
		Rules: Rules{
			MinRows:       100,
			UniqueColumn:  "CustomerID",
			RateColumn:    "Churn",
			RateMin:       0.01,
			RateMax:       0.99,
			RateCheckName: "churn rate",
			CoerceNumeric: []string{"Total Spend"},
		},
	}
}

// ChurnRisk declares the churn risk rate dataset: one row per customer, a
// 1..5 risk score as the outcome, with -1 as the provider's "unknown" code.
func ChurnRisk() Variant {
	return Variant{
		Name: "churn-risk",
		Schema: Schema{Columns: []Column{
			{Name: "customer_id", Type: TypeString},
			{Name: "age", Type: TypeInt, Checks: []Check{GE(0), LE(120)}},
			{Name: "gender", Type: TypeString, Nullable: true},
			{Name: "membership_category", Type: TypeString},
			{Name: "avg_time_spent", Type: TypeFloat, Nullable: true},
			{Name: "avg_transaction_value", Type: TypeFloat, Checks: []Check{GE(0)}},
			{Name: "points_in_wallet", Type: TypeFloat, Nullable: true},
			{Name: "churn_risk_score", Type: TypeInt, Nullable: true,
				Checks: []Check{GE(1), LE(5)}},
		}},
		Rules: Rules{
			MinRows:       100,
			UniqueColumn:  "customer_id",
			RateColumn:    "churn_risk_score",
			RateMin:       1.5,
			RateMax:       4.5,
			RateCheckName: "mean risk score",
			Sentinels:     map[string][]string{"churn_risk_score": {"-1"}},
		},
	}
}
