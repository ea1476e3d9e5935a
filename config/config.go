package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Dataset roles.
const (
	RolePrimary = "primary"
	RoleContext = "context"
)

// Config holds all application configuration.
type Config struct {
	Datasets        []Dataset      `mapstructure:"datasets" yaml:"datasets" validate:"required,min=1,dive"`
	Filters         FilterConfig   `mapstructure:"filters" yaml:"filters"`
	Pricing         PricingConfig  `mapstructure:"pricing" yaml:"pricing"`
	Memo            MemoConfig     `mapstructure:"memo" yaml:"memo"`
	Proceeds        ProceedsConfig `mapstructure:"proceeds" yaml:"proceeds"`
	Server          ServerConfig   `mapstructure:"server" yaml:"server"`
	Log             LogConfig      `mapstructure:"log" yaml:"log"`
	Retry           RetryConfig    `mapstructure:"retry" yaml:"retry"`
	ChromeBin       string         `mapstructure:"chrome_bin" yaml:"chrome_bin"`
	LoadConcurrency int            `mapstructure:"load_concurrency" yaml:"load_concurrency" validate:"gte=1"`
}

// Dataset is one tab-delimited export on disk.
type Dataset struct {
	Name  string `mapstructure:"name" yaml:"name" validate:"required"`
	Label string `mapstructure:"label" yaml:"label"`
	Path  string `mapstructure:"path" yaml:"path" validate:"required"`
	Role  string `mapstructure:"role" yaml:"role" validate:"oneof=primary context"`
}

// DisplayName returns Label, falling back to Name.
func (d Dataset) DisplayName() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// FilterConfig bounds the sold subset.
type FilterConfig struct {
	SoldStatus       string   `mapstructure:"sold_status" yaml:"sold_status" validate:"required"`
	MinSqft          float64  `mapstructure:"min_sqft" yaml:"min_sqft" validate:"gte=0"`
	MaxSqft          float64  `mapstructure:"max_sqft" yaml:"max_sqft" validate:"gtefield=MinSqft"`
	MaxYearBuilt     int      `mapstructure:"max_year_built" yaml:"max_year_built" validate:"gte=0"`
	MinPrice         float64  `mapstructure:"min_price" yaml:"min_price" validate:"gte=0"`
	MaxPrice         float64  `mapstructure:"max_price" yaml:"max_price" validate:"gtefield=MinPrice"`
	ExcludeAddresses []string `mapstructure:"exclude_addresses" yaml:"exclude_addresses"`
}

// PricingConfig drives the dashboard price recommendation.
type PricingConfig struct {
	SubjectSqft    float64 `mapstructure:"subject_sqft" yaml:"subject_sqft" validate:"gt=0"`
	RemodelPremium float64 `mapstructure:"remodel_premium" yaml:"remodel_premium" validate:"gte=0"`
	CompPremiumPct float64 `mapstructure:"comp_premium_pct" yaml:"comp_premium_pct"`
	PSFPremiumPct  float64 `mapstructure:"psf_premium_pct" yaml:"psf_premium_pct"`
	PSFBasis       string  `mapstructure:"psf_basis" yaml:"psf_basis" validate:"oneof=median top"`
	BroadMonths    int     `mapstructure:"broad_months" yaml:"broad_months" validate:"gt=0"`
	ContextMonths  int     `mapstructure:"context_months" yaml:"context_months" validate:"gt=0"`
	BroadTopN      int     `mapstructure:"broad_top_n" yaml:"broad_top_n" validate:"gt=0"`
	BroadShowN     int     `mapstructure:"broad_show_n" yaml:"broad_show_n" validate:"gt=0,ltefield=BroadTopN"`
	ContextTopN    int     `mapstructure:"context_top_n" yaml:"context_top_n" validate:"gte=0"`
	SizeBandMin    float64 `mapstructure:"size_band_min" yaml:"size_band_min" validate:"gte=0"`
	SizeBandMax    float64 `mapstructure:"size_band_max" yaml:"size_band_max" validate:"gtefield=SizeBandMin"`
}

// Adjustment is a named premium added to the memo's market method.
type Adjustment struct {
	Name   string  `mapstructure:"name" yaml:"name" validate:"required"`
	Amount float64 `mapstructure:"amount" yaml:"amount"`
}

// MemoConfig drives the console pricing memo.
type MemoConfig struct {
	SubjectAddress  string       `mapstructure:"subject_address" yaml:"subject_address"`
	SubjectNotes    string       `mapstructure:"subject_notes" yaml:"subject_notes"`
	SubjectSqft     float64      `mapstructure:"subject_sqft" yaml:"subject_sqft" validate:"gt=0"`
	Dataset         string       `mapstructure:"dataset" yaml:"dataset"`
	Months          int          `mapstructure:"months" yaml:"months" validate:"gt=0"`
	TopN            int          `mapstructure:"top_n" yaml:"top_n" validate:"gt=0"`
	CompPremiumPct  float64      `mapstructure:"comp_premium_pct" yaml:"comp_premium_pct"`
	PSFPremiumPct   float64      `mapstructure:"psf_premium_pct" yaml:"psf_premium_pct"`
	PSFBasis        string       `mapstructure:"psf_basis" yaml:"psf_basis" validate:"oneof=median top"`
	StrongMarketDOM float64      `mapstructure:"strong_market_dom" yaml:"strong_market_dom" validate:"gte=0"`
	Adjustments     []Adjustment `mapstructure:"adjustments" yaml:"adjustments" validate:"dive"`
}

// TotalPremium sums the memo adjustments.
func (m MemoConfig) TotalPremium() float64 {
	var total float64
	for _, a := range m.Adjustments {
		total += a.Amount
	}
	return total
}

// ProceedsConfig holds the net-proceeds calculator defaults.
type ProceedsConfig struct {
	ListingAgentPct  float64 `mapstructure:"listing_agent_pct" yaml:"listing_agent_pct" validate:"gte=0,lte=100"`
	SellingAgentPct  float64 `mapstructure:"selling_agent_pct" yaml:"selling_agent_pct" validate:"gte=0,lte=100"`
	TitleInsurance   float64 `mapstructure:"title_insurance" yaml:"title_insurance" validate:"gte=0"`
	EscrowFee        float64 `mapstructure:"escrow_fee" yaml:"escrow_fee" validate:"gte=0"`
	MortgagePayoff   float64 `mapstructure:"mortgage_payoff" yaml:"mortgage_payoff" validate:"gte=0"`
	TransferTax      float64 `mapstructure:"transfer_tax" yaml:"transfer_tax" validate:"gte=0"`
	ExciseTax        float64 `mapstructure:"excise_tax" yaml:"excise_tax" validate:"gte=0"`
	MiscFees         float64 `mapstructure:"misc_fees" yaml:"misc_fees" validate:"gte=0"`
	BuyerConcessions float64 `mapstructure:"buyer_concessions" yaml:"buyer_concessions" validate:"gte=0"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Addr               string `mapstructure:"addr" yaml:"addr" validate:"required"`
	ReadTimeoutSec     int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec" validate:"gte=0"`
	WriteTimeoutSec    int    `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec" validate:"gte=0"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec" validate:"gte=0"`
}

// LogConfig selects level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// RetryConfig applies to the PDF renderer.
type RetryConfig struct {
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts" validate:"gte=1"`
	BaseDelayMs int `mapstructure:"base_delay_ms" yaml:"base_delay_ms" validate:"gte=0"`
}

// Load reads an optional .env file, then the optional YAML config file at
// path, then MLS_* environment variables, on top of built-in defaults.
// Precedence: env > config file > defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	v := viper.New()
	v.SetEnvPrefix("MLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Primary returns the first dataset with the primary role.
func (c *Config) Primary() (Dataset, bool) { return c.byRole(RolePrimary) }

// Context returns the first dataset with the context role.
func (c *Config) Context() (Dataset, bool) { return c.byRole(RoleContext) }

// Dataset looks a dataset up by name.
func (c *Config) Dataset(name string) (Dataset, bool) {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

func (c *Config) byRole(role string) (Dataset, bool) {
	for _, d := range c.Datasets {
		if d.Role == role {
			return d, true
		}
	}
	return Dataset{}, false
}
