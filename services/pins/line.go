package pins

// Line is an exclusive, not-yet-configured handle to one physical pin.
// Implementations live in the platform layer.
type Line interface {
	// Number is the physical pin number (diagnostics only).
	Number() int
	// ConfigureOutput switches the pin to output mode driving high or low.
	ConfigureOutput(high bool) error
	Set(high bool)
	Get() bool
}
