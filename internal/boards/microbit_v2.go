package boards

// MicrobitV2 is the edge connector of the BBC micro:bit v2 (nRF52833).
// Indices 17 and 18 are 3V pads with no GPIO behind them.
var MicrobitV2 = Board{
	Name: "microbit_v2",
	Pins: []string{
		"P0_02", // 0  ring 0
		"P0_03", // 1  ring 1
		"P0_04", // 2  ring 2
		"P0_31", // 3  COL3
		"P0_28", // 4  COL1
		"P0_14", // 5  button A
		"P1_05", // 6  COL4
		"P0_11", // 7  COL2
		"P0_10", // 8
		"P0_09", // 9
		"P0_30", // 10 COL5
		"P0_23", // 11 button B
		"P0_12", // 12
		"P0_17", // 13 SCK
		"P0_01", // 14 MISO
		"P0_13", // 15 MOSI
		"P1_02", // 16
		"",      // 17
		"",      // 18
		"P0_26", // 19 SCL
		"P1_00", // 20 SDA
	},
	MatrixPins:   []int{3, 4, 6, 7, 10},
	AdmissionPin: "P0_14",
}
