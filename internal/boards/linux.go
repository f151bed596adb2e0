package boards

// Linux is a Raspberry Pi 40-pin header driven through periph.io. Logical
// indices follow the BCM numbers of the freely usable lines.
var Linux = Board{
	Name: "linux",
	Pins: []string{
		"GPIO4",
		"GPIO5",
		"GPIO6",
		"GPIO12",
		"GPIO13",
		"GPIO16",
		"GPIO17",
		"GPIO18",
		"GPIO19",
		"GPIO20",
		"GPIO21",
		"GPIO22",
		"GPIO23",
		"GPIO24",
		"GPIO25",
		"GPIO26",
		"GPIO27",
	},
	AdmissionPin: "GPIO3",
}
