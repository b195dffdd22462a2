package service

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied when the feature config omits a setting.
const (
	DefaultLookAheadHours = 48
	DefaultMaxResults     = 10
)

// defaultServiceAreaZips is the Pittsburgh footprint the business launched
// with. A [dispatch] service_area_zips entry replaces it wholesale.
var defaultServiceAreaZips = []string{
	"15201", "15202", "15203", "15212", "15213", "15222", "15232",
}

// CalendarConfig holds configuration for Google Calendar integration
type CalendarConfig struct {
	CalendarID         string `toml:"calendar_id"`
	ServiceAccountPath string `toml:"service_account_path"`
	LookAheadHours     int    `toml:"look_ahead_hours"`
	MaxResults         int64  `toml:"max_results"`
	RejectOverlaps     *bool  `toml:"reject_overlaps"`   // nil means enabled
	NotifyOnBooking    *bool  `toml:"notify_on_booking"` // nil means enabled
}

// DispatchConfig holds the service-area definition.
type DispatchConfig struct {
	ServiceAreaZips []string `toml:"service_area_zips"`
}

// FeatureConfig holds user-facing feature configurations.
// These are non-sensitive settings that customize application behavior
// and integrations. Users can modify these without redeployment.
// Source: TOML configuration file
type FeatureConfig struct {
	Calendar CalendarConfig `toml:"calendar"`
	Dispatch DispatchConfig `toml:"dispatch"`
}

// LoadFeatureConfig loads feature configuration from a TOML file. A missing
// file is not an error: the built-in defaults keep the dispatcher usable
// with the calendar left unconfigured.
func LoadFeatureConfig(path string) (*FeatureConfig, error) {
	var cfg FeatureConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to load feature config: %w", err)
	}
	return &cfg, nil
}

// LookAhead returns the booking horizon as a duration.
func (c *CalendarConfig) LookAhead() time.Duration {
	hours := c.LookAheadHours
	if hours <= 0 {
		hours = DefaultLookAheadHours
	}
	return time.Duration(hours) * time.Hour
}

// ResultCap returns the maximum number of events fetched per availability
// query.
func (c *CalendarConfig) ResultCap() int64 {
	if c.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return c.MaxResults
}

// ShouldRejectOverlaps reports whether bookings must refuse a slot that
// already holds an event.
func (c *CalendarConfig) ShouldRejectOverlaps() bool {
	return c.RejectOverlaps == nil || *c.RejectOverlaps
}

// ShouldNotifyOnBooking reports whether a successful booking also texts the
// dispatcher's cell.
func (c *CalendarConfig) ShouldNotifyOnBooking() bool {
	return c.NotifyOnBooking == nil || *c.NotifyOnBooking
}

// Zips returns the configured service-area zip codes, falling back to the
// built-in footprint when the config names none.
func (c *DispatchConfig) Zips() []string {
	if len(c.ServiceAreaZips) == 0 {
		return defaultServiceAreaZips
	}
	return c.ServiceAreaZips
}

// ZipSet returns the service area as a lookup map.
func (c *DispatchConfig) ZipSet() map[string]bool {
	set := make(map[string]bool, len(c.Zips()))
	for _, zip := range c.Zips() {
		set[zip] = true
	}
	return set
}

// LoadServiceAccountToken resolves the service-account credential blob. A
// GOOGLE_CREDENTIALS_JSON environment value wins, then a SERVICE_ACCOUNT_PATH
// environment override, then the configured service_account_path.
func (c *CalendarConfig) LoadServiceAccountToken() ([]byte, error) {
	if blob := os.Getenv("GOOGLE_CREDENTIALS_JSON"); blob != "" {
		return []byte(blob), nil
	}

	path := os.Getenv("SERVICE_ACCOUNT_PATH")
	if path == "" {
		path = c.ServiceAccountPath
	}
	if path == "" {
		return nil, fmt.Errorf("service_account_path is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}
	return data, nil
}
