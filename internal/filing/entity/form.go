package entity

import "time"

type TaxForm struct {
	ID       int64
	UserID   *int64
	FullName string
	Email    string
	Phone    string
	PAN      string

	HasIncomeTaxLogin      bool
	IncomeTaxLoginID       string
	IncomeTaxLoginPassword string
	HasHomeLoan            bool
	HomeLoanSanctionDate   string
	HomeLoanAmount         string
	HomeLoanCurrentDue     string
	HomeLoanTotalInterest  string
	HasPRAN                bool
	PRANNumber             string

	Status    FormStatus
	Documents []Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document is the metadata of one uploaded file. The bytes themselves live in
// object storage under Bucket/Key.
type Document struct {
	ID           int64
	FormID       int64
	Type         DocumentType
	OriginalName string
	Bucket       string
	Key          string
	Size         int64
	ContentType  string
	CreatedAt    time.Time
}

type NewTaxForm struct {
	ID       int64
	UserID   *int64
	FullName string
	Email    string
	Phone    string
	PAN      string

	HasIncomeTaxLogin      bool
	IncomeTaxLoginID       string
	IncomeTaxLoginPassword string
	HasHomeLoan            bool
	HomeLoanSanctionDate   string
	HomeLoanAmount         string
	HomeLoanCurrentDue     string
	HomeLoanTotalInterest  string
	HasPRAN                bool
	PRANNumber             string

	Status    FormStatus
	Documents []Document
}

type FormFilter struct {
	PAN      string
	Name     string
	Status   FormStatus
	DateFrom time.Time
	DateTo   time.Time
	Size     int32
	Offset   int32

	IsFilterByPAN    bool
	IsFilterByName   bool
	IsFilterByStatus bool
}

type StatusCounts struct {
	Total    int64
	Pending  int64
	Reviewed int64
	Filed    int64
}
