package payroll

const (
	ContractEmployment ContractType = "employment"
	ContractMandate    ContractType = "mandate"

	BonusNone       BonusType = "none"
	BonusPercentage BonusType = "percentage"
	BonusFixed      BonusType = "fixed"

	// Below this age the income tax advance is waived, and students on a
	// mandate contract also skip social insurance.
	YouthExemptionAge = 26

	JobPayrollPreview = "payroll_preview"
)

var contractLabels = map[ContractType]string{
	ContractEmployment: "Umowa o Pracę",
	ContractMandate:    "Umowa Zlecenie",
}

// ContractTypes lists the accepted contract values in a stable order.
var ContractTypes = []string{string(ContractEmployment), string(ContractMandate)}

var BonusTypes = []string{string(BonusNone), string(BonusPercentage), string(BonusFixed)}
