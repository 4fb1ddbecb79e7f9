package domain

// AccountMappings holds the chart-of-accounts IDs the accounting bridge
// posts against. An empty string means the mapping is not configured.
type AccountMappings struct {
	Receivable         string `json:"receivable"`
	Cash               string `json:"cash"`
	Bank               string `json:"bank"`
	Revenue            string `json:"revenue"`
	MiscRevenue        string `json:"miscRevenue"`
	TaxPayable         string `json:"taxPayable"`
	TaxDeductible      string `json:"taxDeductible"`
	COGS               string `json:"cogs"`
	Inventory          string `json:"inventory"`
	Payable            string `json:"payable"`
	WithholdingPayable string `json:"withholdingPayable"`
	MiscExpense        string `json:"miscExpense"`

	// Payroll postings.
	PersonnelExpense       string `json:"personnelExpense"`
	EmployerContribExpense string `json:"employerContribExpense"`
	ProvisionExpense       string `json:"provisionExpense"`
	NetPayable             string `json:"netPayable"`
	RetentionPayable       string `json:"retentionPayable"`
	EmployeeContribPayable string `json:"employeeContribPayable"`
	EmployerContribPayable string `json:"employerContribPayable"`
	ProvisionPayable       string `json:"provisionPayable"`
}

// AccountingSettings is the per-tenant configuration consumed by the
// accounting bridge. When AutoGenerateEntries is false, or a handler's
// required mappings are missing, the bridge is a silent no-op.
type AccountingSettings struct {
	TenantID            string          `json:"tenantID"`
	AutoGenerateEntries bool            `json:"autoGenerateEntries"`
	Mappings            AccountMappings `json:"mappings"`
	AuditFields
}
