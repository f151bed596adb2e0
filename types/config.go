package types

// IndicatorConfig is the retained value on config/indicator.
type IndicatorConfig struct {
	Mode       string `yaml:"mode"`        // "log", "matrix", "off"
	IntervalMs uint32 `yaml:"interval_ms"` // >0
}

// AdmissionConfig is the retained value on config/admission.
type AdmissionConfig struct {
	DebounceMs uint32 `yaml:"debounce_ms"`
}
