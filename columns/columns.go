// Package columns documents the MLS export schema: what each raw column
// means and how the loader should coerce it.
package columns

import (
	"sort"
	"strings"
)

// Kind classifies a raw column for coercion and display.
type Kind string

const (
	KindPrice       Kind = "price"
	KindDate        Kind = "date"
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindText        Kind = "text"
	KindOther       Kind = "other"
)

// Raw export column names used by the pipeline.
const (
	ListingNumber       = "Listing Number"
	StreetNumber        = "Street Number"
	StreetName          = "Street Name"
	City                = "City"
	State               = "State"
	ZipCode             = "Zip Code"
	Bedrooms            = "Bedrooms"
	Bathrooms           = "Bathrooms"
	FinishedSqft        = "Finished Sqft"
	SquareFootage       = "Square Footage"
	LotSqft             = "Lot SqFt"
	YearBuilt           = "Year Built"
	ListingPrice        = "Listing Price"
	SellingPrice        = "Selling Price"
	CurrentPrice        = "Current Price"
	OriginalPrice       = "Original Price"
	ListingDate         = "Listing Date"
	SellingDate         = "Selling Date"
	EntryDate           = "Entry Date"
	PendingDate         = "Pending Date"
	DOM                 = "DOM"
	CDOM                = "CDOM"
	Status              = "Status"
	PropertySubType     = "Property Sub Type"
	ArchitectureDesc    = "Architecture Desc"
	BuildingCondition   = "Building Condition"
	Subdivision         = "Subdivision"
	Area                = "Area"
	TaxesAnnual         = "Taxes Annual"
	ParkingType         = "Parking Type"
	Exterior            = "Exterior"
	Foundation          = "Foundation"
	HeatingCoolingType  = "Heating Cooling Type"
	StyleCode           = "Style Code"
	FireplacesTotal     = "Fireplaces Total"
	ParkingCoveredTotal = "Parking Covered Total"
	MarketingRemarks    = "Marketing Remarks"
)

// KeyColumns is the fixed set the loader narrows every export to.
var KeyColumns = []string{
	ListingNumber, StreetNumber, StreetName, City, State, ZipCode,
	Bedrooms, Bathrooms, FinishedSqft, SquareFootage, LotSqft, YearBuilt,
	ListingPrice, SellingPrice, CurrentPrice, OriginalPrice,
	ListingDate, SellingDate, EntryDate, PendingDate,
	DOM, CDOM, Status, PropertySubType, ArchitectureDesc, BuildingCondition,
	Subdivision, Area, TaxesAnnual, ParkingType, Exterior, Foundation,
	HeatingCoolingType, StyleCode, FireplacesTotal, ParkingCoveredTotal,
	MarketingRemarks,
}

var (
	Categorical = []string{
		"City", "State", "Area", "Subdivision", "Property Sub Type", "Architecture Desc",
		"Building Condition", "Basement", "Exterior", "Foundation", "Roof", "Energy Source",
		"Heating Cooling Type", "Water", "Sewer Type", "Parking Type", "Status", "Occupant Type",
		"Financing", "School District", "County",
	}

	Numerical = []string{
		"Street Number", "Bedrooms", "Bathrooms", "Finished Sqft", "Square Footage",
		"Square Footage Unfinished", "Lot SqFt", "Fireplaces Total", "Total Useable Rooms",
		"Parking Covered Total", "Year Built", "DOM", "CDOM", "Photo Count",
	}

	Price = []string{
		"Current Price", "Original Price", "Listing Price", "Selling Price", "Taxes Annual",
		"Association Dues",
	}

	Date = []string{
		"Entry Date", "Listing Date", "Last Price Change Date", "Pending Date", "Selling Date",
		"Contractual Date", "Contingent Date", "Inactive Date", "Status Change Date",
		"Matrix Modified DT",
	}

	Text = []string{
		"Marketing Remarks", "Agent Only Remarks", "Directions", "Interior Features",
		"Site Features", "Appliances That Stay", "Floor Covering", "Lot Details",
	}
)

var kinds = buildKinds()

func buildKinds() map[string]Kind {
	m := make(map[string]Kind)
	for _, group := range []struct {
		names []string
		kind  Kind
	}{
		{Categorical, KindCategorical},
		{Numerical, KindNumeric},
		{Price, KindPrice},
		{Date, KindDate},
		{Text, KindText},
	} {
		for _, n := range group.names {
			m[normalize(n)] = group.kind
		}
	}
	return m
}

// KindOf returns the classification of a raw column name. Matching ignores
// case and surrounding whitespace.
func KindOf(name string) Kind {
	if k, ok := kinds[normalize(name)]; ok {
		return k
	}
	return KindOther
}

// Describe returns the human description of a raw column, or "" when unknown.
func Describe(name string) string {
	n := normalize(name)
	for _, c := range Dictionary {
		if normalize(c.Name) == n {
			return c.Description
		}
	}
	return ""
}

// Entry is one documented column.
type Entry struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`
}

// Entries returns every documented column with its kind, sorted by group then
// name. When kind is non-empty only columns of that kind are returned.
func Entries(kind Kind) []Entry {
	out := make([]Entry, 0, len(Dictionary))
	for _, c := range Dictionary {
		e := Entry{Name: c.Name, Group: c.Group, Description: c.Description, Kind: KindOf(c.Name)}
		if kind != "" && e.Kind != kind {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
