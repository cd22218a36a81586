package domain

// Company is an employer the user applies to. Names are unique per user.
type Company struct {
	CompanyID    string `json:"companyID"`
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Website      string `json:"website"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	Industry     string `json:"industry"`
	CompanySize  string `json:"companySize"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
	LogoURL      string `json:"logoURL"`
	AuditFields
}
