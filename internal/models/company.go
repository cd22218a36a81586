package models

// Company is a row of the companies table.
type Company struct {
	CompanyID    string `db:"company_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Website      string `db:"website"`
	Street       string `db:"street"`
	City         string `db:"city"`
	State        string `db:"state"`
	ZipCode      string `db:"zip_code"`
	Country      string `db:"country"`
	Industry     string `db:"industry"`
	CompanySize  string `db:"company_size"`
	ContactName  string `db:"contact_name"`
	ContactEmail string `db:"contact_email"`
	ContactPhone string `db:"contact_phone"`
	Notes        string `db:"notes"`
	LogoURL      string `db:"logo_url"`
	AuditFields
}
