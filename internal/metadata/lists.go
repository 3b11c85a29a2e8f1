package metadata

// List display names. Lookup columns reference lists by these names.
const (
	ListCountry                = "Country"
	ListServiceLine            = "ServiceLine"
	ListBasin                  = "Basin"
	ListCustomer               = "Customer"
	ListContact                = "Contact"
	ListOpportunity            = "Opportunity"
	ListOpportunityServiceLine = "OpportunityServiceLine"
	ListOpportunityContact     = "OpportunityContact"
	ListActivity               = "Activity"
)

var regions = []string{
	"North America", "Latin America", "Europe", "Middle East", "Africa", "Asia Pacific",
}

var opportunityStages = []string{
	"Prospecting", "Qualification", "Proposal", "Negotiation", "Closed Won", "Closed Lost",
}

// CRMLists returns the CRM schema in provisioning order:
// reference data, then core entities, then junction and activity lists.
func CRMLists() []ListDef {
	return []ListDef{
		// --- Reference data ---
		{
			DisplayName: ListCountry,
			Description: "Countries where the company operates",
			Columns: []ColumnDef{
				{Name: "tss_iso_code", DisplayName: "ISO Code", Type: ColumnText, MaxLength: 3, Required: true, Indexed: true},
				{Name: "tss_region", DisplayName: "Region", Type: ColumnChoice, Choices: regions, Required: true},
			},
		},
		{
			DisplayName: ListServiceLine,
			Description: "Service lines offered (wireline, cementing, stimulation...)",
			Columns: []ColumnDef{
				{Name: "tss_code", DisplayName: "Code", Type: ColumnText, MaxLength: 20, Required: true, Indexed: true},
				{Name: "tss_description", DisplayName: "Description", Type: ColumnNote},
				{Name: "tss_active", DisplayName: "Active", Type: ColumnBoolean},
			},
		},

		// --- Core entities ---
		{
			DisplayName: ListBasin,
			Description: "Producing basins and fields",
			Columns: []ColumnDef{
				{Name: "tss_country", DisplayName: "Country", Type: ColumnLookup, LookupList: ListCountry, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_basin_type", DisplayName: "Basin Type", Type: ColumnChoice, Choices: []string{"Onshore", "Offshore", "Unconventional"}},
			},
		},
		{
			DisplayName: ListCustomer,
			Description: "Operators and partners",
			Columns: []ColumnDef{
				{Name: "tss_country", DisplayName: "Headquarters", Type: ColumnLookup, LookupList: ListCountry, LookupColumn: "Title", Indexed: true},
				{Name: "tss_segment", DisplayName: "Segment", Type: ColumnChoice, Choices: []string{"NOC", "IOC", "Independent", "Service Partner"}, Required: true},
				{Name: "tss_website", DisplayName: "Website", Type: ColumnText, MaxLength: 255},
				{Name: "tss_annual_spend", DisplayName: "Annual Spend", Type: ColumnCurrency},
				{Name: "tss_notes", DisplayName: "Notes", Type: ColumnNote},
			},
		},
		{
			DisplayName: ListContact,
			Description: "People at customer organisations",
			Columns: []ColumnDef{
				{Name: "tss_customer", DisplayName: "Customer", Type: ColumnLookup, LookupList: ListCustomer, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_email", DisplayName: "Email", Type: ColumnText, MaxLength: 255, Indexed: true},
				{Name: "tss_phone", DisplayName: "Phone", Type: ColumnText, MaxLength: 40},
				{Name: "tss_job_title", DisplayName: "Job Title", Type: ColumnText, MaxLength: 120},
				{Name: "tss_primary", DisplayName: "Primary Contact", Type: ColumnBoolean},
			},
		},
		{
			DisplayName: ListOpportunity,
			Description: "Sales opportunities",
			Columns: []ColumnDef{
				{Name: "tss_customer", DisplayName: "Customer", Type: ColumnLookup, LookupList: ListCustomer, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_basin", DisplayName: "Basin", Type: ColumnLookup, LookupList: ListBasin, LookupColumn: "Title"},
				{Name: "tss_stage", DisplayName: "Stage", Type: ColumnChoice, Choices: opportunityStages, Required: true, Indexed: true},
				{Name: "tss_amount", DisplayName: "Amount", Type: ColumnCurrency},
				{Name: "tss_probability", DisplayName: "Probability (%)", Type: ColumnNumber},
				{Name: "tss_owner", DisplayName: "Owner", Type: ColumnText, MaxLength: 120},
				{Name: "tss_notes", DisplayName: "Notes", Type: ColumnNote},
			},
		},

		// --- Junction and activity lists ---
		{
			DisplayName: ListOpportunityServiceLine,
			Description: "Service lines quoted on an opportunity",
			Columns: []ColumnDef{
				{Name: "tss_opportunity", DisplayName: "Opportunity", Type: ColumnLookup, LookupList: ListOpportunity, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_service_line", DisplayName: "Service Line", Type: ColumnLookup, LookupList: ListServiceLine, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_estimated_revenue", DisplayName: "Estimated Revenue", Type: ColumnCurrency},
			},
		},
		{
			DisplayName: ListOpportunityContact,
			Description: "Contacts involved in an opportunity",
			Columns: []ColumnDef{
				{Name: "tss_opportunity", DisplayName: "Opportunity", Type: ColumnLookup, LookupList: ListOpportunity, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_contact", DisplayName: "Contact", Type: ColumnLookup, LookupList: ListContact, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_role", DisplayName: "Role", Type: ColumnChoice, Choices: []string{"Decision Maker", "Technical Buyer", "Influencer", "Procurement"}},
			},
		},
		{
			DisplayName: ListActivity,
			Description: "Calls, meetings and site visits logged against opportunities",
			Columns: []ColumnDef{
				{Name: "tss_opportunity", DisplayName: "Opportunity", Type: ColumnLookup, LookupList: ListOpportunity, LookupColumn: "Title", Required: true, Indexed: true},
				{Name: "tss_activity_type", DisplayName: "Type", Type: ColumnChoice, Choices: []string{"Call", "Meeting", "Site Visit", "Email"}, Required: true},
				{Name: "tss_summary", DisplayName: "Summary", Type: ColumnNote},
				{Name: "tss_follow_up", DisplayName: "Follow-up Needed", Type: ColumnBoolean},
			},
		},
	}
}

// NewCRMRegistry builds the registry holding CRMLists.
func NewCRMRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(CRMLists()...)
	return reg
}
