package columns

// Column describes one raw export column.
type Column struct {
	Name        string
	Group       string
	Description string
}

// Dictionary lists every known export column.
var Dictionary = []Column{
	{"Listing Number", "Basic Property Identifiers", "Unique MLS listing identifier"},
	{"Street Number", "Basic Property Identifiers", "Property street address number"},
	{"Street Number Modifier", "Basic Property Identifiers", "Additional street number info (e.g., 1/2, A, B)"},
	{"Street Direction", "Basic Property Identifiers", "Pre-directional (N, S, E, W)"},
	{"Street Name", "Basic Property Identifiers", "Name of the street"},
	{"Street Suffix", "Basic Property Identifiers", "Street type (St, Ave, Rd, etc.)"},
	{"Street Post Direction", "Basic Property Identifiers", "Post-directional (N, S, E, W)"},
	{"Unit", "Basic Property Identifiers", "Apartment/unit number if applicable"},
	{"City", "Basic Property Identifiers", "City where property is located"},
	{"State", "Basic Property Identifiers", "State abbreviation"},
	{"Zip Code", "Basic Property Identifiers", "Postal zip code"},
	{"Area", "Property Details", "MLS area code/designation"},
	{"Subdivision", "Property Details", "Name of subdivision/development"},
	{"APN", "Property Details", "Assessor's Parcel Number (tax ID)"},
	{"Map Book", "Property Details", "Plat map book reference"},
	{"Map Page", "Property Details", "Plat map page reference"},
	{"Map X Coordinate", "Property Details", "X coordinate on map"},
	{"Map Y Coordinate", "Property Details", "Y coordinate on map"},
	{"Legal Description", "Property Details", "Legal property description"},
	{"Property Sub Type", "Property Characteristics", "Type of residential property"},
	{"Architecture Desc", "Property Characteristics", "Architectural style description"},
	{"Style Code", "Property Characteristics", "Numeric code for architectural style"},
	{"Year Built", "Property Characteristics", "Year property was constructed"},
	{"Building Condition", "Property Characteristics", "Overall condition assessment"},
	{"Building Information", "Property Characteristics", "Additional building details"},
	{"New Construction State", "Property Characteristics", "New construction status"},
	{"Finished Sqft", "Size and Layout", "Finished square footage"},
	{"Square Footage", "Size and Layout", "Total square footage"},
	{"Square Footage Source", "Size and Layout", "Source of square footage data"},
	{"Square Footage Unfinished", "Size and Layout", "Unfinished square footage"},
	{"Bedrooms", "Size and Layout", "Number of bedrooms"},
	{"Bathrooms", "Size and Layout", "Number of bathrooms"},
	{"Total Useable Rooms", "Size and Layout", "Total count of useable rooms"},
	{"Fireplaces Total", "Size and Layout", "Number of fireplaces"},
	{"Lot SqFt", "Lot Information", "Lot size in square feet"},
	{"Lot Details", "Lot Information", "Description of lot features"},
	{"Lot Dimensions", "Lot Information", "Lot measurements"},
	{"Lot Measurement", "Lot Information", "Unit of lot measurement"},
	{"Lot Number", "Lot Information", "Lot number in subdivision"},
	{"Lot Topography", "Lot Information", "Terrain description of lot"},
	{"Basement", "Property Features", "Basement description/type"},
	{"Exterior", "Property Features", "Exterior materials/finishes"},
	{"Floor Covering", "Property Features", "Types of flooring"},
	{"Foundation", "Property Features", "Foundation type"},
	{"Roof", "Property Features", "Roofing material/type"},
	{"Interior Features", "Property Features", "Notable interior amenities"},
	{"Site Features", "Property Features", "Outdoor/site amenities"},
	{"View", "Property Features", "View description from property"},
	{"Waterfront", "Property Features", "Waterfront access (Y/N)"},
	{"Waterfront Footage", "Property Features", "Linear feet of waterfront"},
	{"Pool Type", "Property Features", "Swimming pool type if present"},
	{"Energy Source", "Utilities and Systems", "Primary energy source"},
	{"Heating Cooling Type", "Utilities and Systems", "HVAC system type"},
	{"Water", "Utilities and Systems", "Water source type"},
	{"Water Company", "Utilities and Systems", "Water utility provider"},
	{"Water Heater Location", "Utilities and Systems", "Location of water heater"},
	{"Water Heater Type", "Utilities and Systems", "Type of water heater"},
	{"Sewer Type", "Utilities and Systems", "Sewage system type"},
	{"Sewer Company", "Utilities and Systems", "Sewer utility provider"},
	{"Power Company", "Utilities and Systems", "Electric utility provider"},
	{"Appliances That Stay", "Appliances and Equipment", "Included appliances"},
	{"Leased Equipment", "Appliances and Equipment", "Leased equipment details"},
	{"Parking Type", "Parking and Transportation", "Type of parking available"},
	{"Parking Covered Total", "Parking and Transportation", "Number of covered parking spaces"},
	{"Bus Line Nearby", "Parking and Transportation", "Public transit access"},
	{"Manu. Home Manufacturer", "Manufactured Home Details", "Mobile/manufactured home maker"},
	{"Manu. Home Model No.", "Manufactured Home Details", "Mobile/manufactured home model"},
	{"Manu. Home Serial No.", "Manufactured Home Details", "Mobile/manufactured home serial number"},
	{"Current Price", "Financial Information", "Current listing price"},
	{"Original Price", "Financial Information", "Original listing price"},
	{"Listing Price", "Financial Information", "Listed price"},
	{"Selling Price", "Financial Information", "Final sold price"},
	{"Taxes Annual", "Financial Information", "Annual property taxes"},
	{"Association Dues", "Financial Information", "HOA/association fees"},
	{"Senior Exemption", "Financial Information", "Senior tax exemption status"},
	{"Entry Date", "Dates and Timeline", "Date listing entered MLS"},
	{"Listing Date", "Dates and Timeline", "Date property was listed"},
	{"Last Price Change Date", "Dates and Timeline", "Date of most recent price change"},
	{"Pending Date", "Dates and Timeline", "Date property went pending"},
	{"Selling Date", "Dates and Timeline", "Date property sold"},
	{"Contractual Date", "Dates and Timeline", "Date contract was signed"},
	{"Contingent Date", "Dates and Timeline", "Date contingencies were added"},
	{"Inactive Date", "Dates and Timeline", "Date listing became inactive"},
	{"Status Change Date", "Dates and Timeline", "Date of last status change"},
	{"Matrix Modified DT", "Dates and Timeline", "Last modification date/time in MLS"},
	{"DOM", "Market Metrics", "Days on Market"},
	{"CDOM", "Market Metrics", "Cumulative Days on Market"},
	{"Status", "Market Metrics", "Current listing status"},
	{"Listing Agent ID", "Agent and Office Information", "Listing agent MLS ID"},
	{"Listing Agent Full Name", "Agent and Office Information", "Listing agent name"},
	{"Listing Agent Cellular", "Agent and Office Information", "Listing agent phone"},
	{"Co Listing Agent ID", "Agent and Office Information", "Co-listing agent MLS ID"},
	{"Co Listing Agent Full Name", "Agent and Office Information", "Co-listing agent name"},
	{"Co Listing Agent Cellular", "Agent and Office Information", "Co-listing agent phone"},
	{"Listing Office ID", "Agent and Office Information", "Listing office MLS ID"},
	{"Listing Office Name", "Agent and Office Information", "Listing office name"},
	{"Listing Office Phone", "Agent and Office Information", "Listing office phone"},
	{"Co Listing Office ID", "Agent and Office Information", "Co-listing office MLS ID"},
	{"Co Listing Office Name", "Agent and Office Information", "Co-listing office name"},
	{"Co Listing Office Phone", "Agent and Office Information", "Co-listing office phone"},
	{"Selling Agent ID", "Agent and Office Information", "Selling agent MLS ID"},
	{"Selling Agent Full Name", "Agent and Office Information", "Selling agent name"},
	{"Selling Agent Cellular", "Agent and Office Information", "Selling agent phone"},
	{"Selling Office ID", "Agent and Office Information", "Selling office MLS ID"},
	{"Selling Office Name", "Agent and Office Information", "Selling office name"},
	{"Selling Office Phone", "Agent and Office Information", "Selling office phone"},
	{"Showing Information", "Property Access and Showing", "How to schedule showings"},
	{"Showing Instructions", "Property Access and Showing", "Special showing instructions"},
	{"Phone to Show Number", "Property Access and Showing", "Phone number for showings"},
	{"Show Addressto Public", "Property Access and Showing", "Whether address is public"},
	{"Show Map Link", "Property Access and Showing", "Whether to show map link"},
	{"Occupant Name", "Property Access and Showing", "Name of current occupant"},
	{"Occupant Type", "Property Access and Showing", "Type of occupancy"},
	{"Possession", "Property Access and Showing", "When possession is available"},
	{"Owner Name", "Owner Information", "Primary owner name"},
	{"Owner Name 2", "Owner Information", "Secondary owner name"},
	{"Owners City State", "Owner Information", "Owner's city and state"},
	{"Financing", "Financing and Terms", "Financing options accepted"},
	{"Potential Terms", "Financing and Terms", "Available financing terms"},
	{"Bank or REO", "Financing and Terms", "Bank-owned or REO status"},
	{"Third Party Approval Required", "Financing and Terms", "Need for third-party approval"},
	{"Marketing Remarks", "Marketing and Media", "Property description/marketing text"},
	{"Directions", "Marketing and Media", "Driving directions to property"},
	{"Photo Count", "Marketing and Media", "Number of listing photos"},
	{"Picture Provided By", "Marketing and Media", "Photo source"},
	{"Photographer Instructions", "Marketing and Media", "Instructions for photographer"},
	{"Virtual Tour URL", "Marketing and Media", "Link to virtual tour"},
	{"Publish to Internet", "Marketing and Media", "Whether listing is online"},
	{"Agent Only Remarks", "Administrative", "Private remarks for agents only"},
	{"BBC Comments", "Administrative", "Broker-to-broker comments"},
	{"Commission", "Administrative", "Commission structure"},
	{"Preliminary Title Ordered", "Administrative", "Title order status"},
	{"Tax Year", "Administrative", "Property tax year"},
	{"County", "Administrative", "County where property is located"},
	{"School District", "Administrative", "School district designation"},
	{"Sale Type", "Administrative", "Type of sale transaction"},
	{"Building Complex Or Project Name", "Administrative", "Complex/project name if applicable"},
}
