package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("datasets", []map[string]any{
		{
			"name":  "sunrise",
			"label": "Sunrise Area",
			"path":  "SunriseRebeccaRidge11001900sqft.txt",
			"role":  RolePrimary,
		},
		{
			"name":  "rebecca-ridge",
			"label": "Rebecca Ridge",
			"path":  "RebeccaRidge11001900sqft.txt",
			"role":  RoleContext,
		},
	})

	v.SetDefault("filters.sold_status", "Sold")
	v.SetDefault("filters.min_sqft", 1100)
	v.SetDefault("filters.max_sqft", 1900)
	v.SetDefault("filters.max_year_built", 2020)
	v.SetDefault("filters.min_price", 50000)
	v.SetDefault("filters.max_price", 2000000)
	v.SetDefault("filters.exclude_addresses", []string{"15807 131st"})

	v.SetDefault("pricing.subject_sqft", 1576)
	v.SetDefault("pricing.remodel_premium", 50000)
	v.SetDefault("pricing.comp_premium_pct", 5)
	v.SetDefault("pricing.psf_premium_pct", 10)
	v.SetDefault("pricing.psf_basis", "median")
	v.SetDefault("pricing.broad_months", 18)
	v.SetDefault("pricing.context_months", 24)
	v.SetDefault("pricing.broad_top_n", 5)
	v.SetDefault("pricing.broad_show_n", 3)
	v.SetDefault("pricing.context_top_n", 3)
	v.SetDefault("pricing.size_band_min", 1500)
	v.SetDefault("pricing.size_band_max", 1600)

	v.SetDefault("memo.subject_address", "12903 158th Street Ct E, Puyallup, WA 98374")
	v.SetDefault("memo.subject_notes", "Premium remodeled home, Rebecca Ridge neighborhood")
	v.SetDefault("memo.subject_sqft", 1600)
	v.SetDefault("memo.dataset", "rebecca-ridge")
	v.SetDefault("memo.months", 24)
	v.SetDefault("memo.top_n", 5)
	v.SetDefault("memo.comp_premium_pct", 8)
	v.SetDefault("memo.psf_premium_pct", 10)
	v.SetDefault("memo.psf_basis", "top")
	v.SetDefault("memo.strong_market_dom", 30)
	v.SetDefault("memo.adjustments", []map[string]any{
		{"name": "Kitchen Remodel (High-End)", "amount": 15000},
		{"name": "Master Suite Renovation", "amount": 12000},
		{"name": "Custom Staircase & Railing", "amount": 8000},
		{"name": "Custom Trex Deck", "amount": 7000},
		{"name": "New HVAC/AC System", "amount": 6000},
		{"name": "New Roof", "amount": 5000},
		{"name": "Custom Lighting & Finishes", "amount": 4000},
		{"name": "Fresh Paint Throughout", "amount": 3000},
		{"name": "New Carpet", "amount": 2000},
		{"name": "Custom Laundry Tiling", "amount": 1500},
	})

	v.SetDefault("proceeds.listing_agent_pct", 2.5)
	v.SetDefault("proceeds.selling_agent_pct", 2.5)
	v.SetDefault("proceeds.title_insurance", 1300)
	v.SetDefault("proceeds.escrow_fee", 1400)
	v.SetDefault("proceeds.mortgage_payoff", 285000)
	v.SetDefault("proceeds.transfer_tax", 500)
	v.SetDefault("proceeds.excise_tax", 9000)
	v.SetDefault("proceeds.misc_fees", 300)
	v.SetDefault("proceeds.buyer_concessions", 0)

	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.read_timeout_sec", 15)
	v.SetDefault("server.write_timeout_sec", 30)
	v.SetDefault("server.shutdown_timeout_sec", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay_ms", 500)

	v.SetDefault("chrome_bin", "")
	v.SetDefault("load_concurrency", 2)
}
